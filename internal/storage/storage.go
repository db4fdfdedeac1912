// Package storage defines the object-access contract implemented by every
// persistence backend, the typed identity-map key, and the cascade and
// reference rule tables both backends execute. Domain and service modules
// depend only on this package; which physical backend is active is decided
// once at startup by the facade.
package storage

import (
	"fmt"

	"github.com/mensah/schoolms/internal/app/models"
)

// Key identifies one live entity in an identity map: type discriminator plus
// id, as a proper two-part key rather than an interpolated string.
type Key struct {
	Kind models.Kind
	ID   string
}

// KeyOf returns the identity-map key for an entity.
func KeyOf(e models.Entity) Key {
	return Key{Kind: e.Kind(), ID: e.EntityID()}
}

// String renders the persisted "{TypeName}.{id}" form of the key.
func (k Key) String() string {
	return fmt.Sprintf("%s.%s", k.Kind, k.ID)
}

// ParseKey parses the persisted "{TypeName}.{id}" form.
func ParseKey(s string) (Key, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return Key{Kind: models.Kind(s[:i]), ID: s[i+1:]}, nil
		}
	}
	return Key{}, fmt.Errorf("malformed storage key %q", s)
}

// Query is a composable cursor over one entity kind. Where adds an
// attribute-equality filter and returns the cursor for chaining; nothing
// executes until a terminal operation runs. Terminal operations on a cursor
// with an unknown filter field fail with ErrInvalidQuery. Independent cursors
// never share scan state.
type Query interface {
	Where(field string, value interface{}) Query
	All() ([]models.Entity, error)
	First() (models.Entity, bool, error)
	Count() (int64, error)
}

// Store is the uniform object-access contract. Both backends implement it
// with identical semantics: entities handed to New become durable when Save
// returns, reads return either the cached live object or a freshly
// materialized one satisfying the same invariants, and deletes execute the
// cascade rule table.
type Store interface {
	// All returns every entity, or only those of the given kinds.
	All(kinds ...models.Kind) ([]models.Entity, error)

	// GetByID looks up one entity. Absence is reported through the ok
	// result, never as an error.
	GetByID(kind models.Kind, id string) (models.Entity, bool)

	// Query opens a composable cursor over one kind.
	Query(kind models.Kind) Query

	// New validates the entity, checks its reference rules, and stages it.
	// The write becomes durable when Save returns.
	New(e models.Entity) error

	// Save makes staged writes durable. Entities passed in are staged first.
	// On failure nothing partial is observable and the error wraps
	// ErrStorageBackend.
	Save(entities ...models.Entity) error

	// Delete removes an entity and its cascade children. Fails with
	// ErrNotFound if the target is absent.
	Delete(e models.Entity) error

	// DeleteByID is Delete addressed by kind and id.
	DeleteByID(kind models.Kind, id string) error

	// Reload discards in-memory state and starts from the persisted truth.
	Reload() error

	// Close releases the backend's in-process resources without writing.
	// Idempotent; never fails.
	Close() error
}
