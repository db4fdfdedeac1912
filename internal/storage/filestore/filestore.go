// Package filestore is the single-process object store backed by one JSON
// document on disk. All live entities sit in an in-memory identity map;
// Save rewrites the whole document through a temp-file-then-rename so the
// file on disk is always either the previous or the next fully consistent
// snapshot.
//
// The whole-file overwrite strategy is not safe for concurrent writers: two
// processes flushing against the same path race on the final rename and the
// last writer wins, silently discarding the other writer's changes. That is
// an accepted limitation of this backend.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/pkg/logger"
	"github.com/mensah/schoolms/internal/storage"
	"github.com/mensah/schoolms/internal/storage/codec"
)

// FileStore keeps every live entity in an identity map keyed by
// (kind, id) and persists the map as one JSON document. Safe for concurrent
// readers; writes are serialized by the mutex within this one instance only.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	objects map[storage.Key]models.Entity
}

var _ storage.Store = (*FileStore)(nil)

// New creates a file store over the given path, creating the parent
// directory if needed. The file itself is only written on Save.
func New(path string) (*FileStore, error) {
	if path == "" {
		return nil, apperrors.NewConfigurationError("storage file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.NewStorageBackendError("create storage directory", err)
		}
	}
	s := &FileStore{
		path:    path,
		objects: make(map[storage.Key]models.Entity),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// All returns every live entity, or only those of the given kinds.
func (s *FileStore) All(kinds ...models.Kind) ([]models.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := map[models.Kind]bool{}
	for _, k := range kinds {
		if !models.Registered(k) {
			return nil, apperrors.NewUnknownTypeError(string(k))
		}
		wanted[k] = true
	}

	var out []models.Entity
	for key, e := range s.objects {
		if len(wanted) > 0 && !wanted[key.Kind] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// GetByID is an O(1) identity-map lookup. Absence is reported through ok.
func (s *FileStore) GetByID(kind models.Kind, id string) (models.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.objects[storage.Key{Kind: kind, ID: id}]
	return e, ok
}

// Query opens a cursor over one kind. Filters are applied on a linear scan
// when a terminal operation runs; independent cursors scan independently.
func (s *FileStore) Query(kind models.Kind) storage.Query {
	return &fileQuery{store: s, kind: kind}
}

// New validates the entity, checks reference rules against the identity map,
// and inserts it. The insert is durable only after the next Save.
func (s *FileStore) New(e models.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage(e)
}

// stage inserts without flushing. Caller holds the write lock.
func (s *FileStore) stage(e models.Entity) error {
	e.Init()
	if err := e.Validate(); err != nil {
		return err
	}
	if err := storage.CheckReferences(lockedGetter{s}, e); err != nil {
		return err
	}
	if u, ok := e.(*models.User); ok {
		if err := s.checkEmailUnique(u); err != nil {
			return err
		}
	}
	s.objects[storage.KeyOf(e)] = e
	return nil
}

// checkEmailUnique scans for another user carrying the same email.
func (s *FileStore) checkEmailUnique(u *models.User) error {
	for key, other := range s.objects {
		if key.Kind != models.KindUser || key.ID == u.ID {
			continue
		}
		if existing, ok := other.(*models.User); ok && existing.Email == u.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	return nil
}

// Save stages any given entities and then flushes the entire identity map to
// disk as one JSON document, written atomically (temp file, then rename).
func (s *FileStore) Save(entities ...models.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entities {
		if err := s.stage(e); err != nil {
			return err
		}
	}
	return s.flush()
}

// flush serializes every live entity and atomically replaces the document.
// Caller holds the write lock.
func (s *FileStore) flush() error {
	doc := make(map[string]map[string]interface{}, len(s.objects))
	for key, e := range s.objects {
		encoded, err := codec.Encode(e)
		if err != nil {
			return err
		}
		doc[key.String()] = encoded
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.NewStorageBackendError("encode snapshot", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.json")
	if err != nil {
		return apperrors.NewStorageBackendError("create temp snapshot", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorageBackendError("write snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageBackendError("close snapshot", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageBackendError("replace snapshot", err)
	}
	return nil
}

// Delete removes the entity and its cascade children from the identity map.
// The removal is durable after the next Save.
func (s *FileStore) Delete(e models.Entity) error {
	return s.DeleteByID(e.Kind(), e.EntityID())
}

// DeleteByID removes by kind and id, cascading per the rule table.
func (s *FileStore) DeleteByID(kind models.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storage.Key{Kind: kind, ID: id}
	if _, ok := s.objects[key]; !ok {
		return apperrors.NewNotFoundError(string(kind), id)
	}
	s.remove(key)
	return nil
}

// remove deletes a key and recursively applies the cascade rule table.
// Caller holds the write lock.
func (s *FileStore) remove(key storage.Key) {
	delete(s.objects, key)

	for _, rule := range storage.Cascades[key.Kind] {
		for childKey, child := range s.objects {
			if childKey.Kind != rule.Child {
				continue
			}
			doc, err := codec.Encode(child)
			if err != nil {
				logger.Error().Err(err).Str("key", childKey.String()).Msg("Skipping cascade candidate that failed to encode")
				continue
			}
			if ref, _ := doc[rule.Field].(string); ref == key.ID {
				s.remove(childKey)
			}
		}
	}
}

// Reload discards the in-memory map and re-reads the document from disk.
// A missing file is an empty store, not an error.
func (s *FileStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.objects = make(map[storage.Key]models.Entity)
			return nil
		}
		return apperrors.NewStorageBackendError("read snapshot", err)
	}

	doc := map[string]map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperrors.NewStorageBackendError("decode snapshot", err)
	}

	objects := make(map[storage.Key]models.Entity, len(doc))
	for rawKey, encoded := range doc {
		entity, err := codec.Decode(encoded)
		if err != nil {
			return fmt.Errorf("record %s: %w", rawKey, err)
		}
		objects[storage.KeyOf(entity)] = entity
	}

	s.objects = objects
	return nil
}

// Close clears the in-memory map without writing, simulating a process
// restart. The file on disk is untouched. Idempotent.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects = make(map[storage.Key]models.Entity)
	return nil
}

// lockedGetter reads the identity map while the caller already holds the
// store lock, avoiding re-entrant locking from CheckReferences.
type lockedGetter struct {
	store *FileStore
}

func (g lockedGetter) GetByID(kind models.Kind, id string) (models.Entity, bool) {
	e, ok := g.store.objects[storage.Key{Kind: kind, ID: id}]
	return e, ok
}
