package filestore

import (
	"encoding/json"
	"reflect"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
	"github.com/mensah/schoolms/internal/storage/codec"
)

// condition is one attribute-equality filter.
type condition struct {
	field string
	value interface{}
}

// fileQuery is an eager-scan cursor. Conditions accumulate on Where; each
// terminal operation runs its own scan over the identity map, so independent
// cursors never share state and a cursor can be re-run.
type fileQuery struct {
	store *FileStore
	kind  models.Kind
	conds []condition
	err   error
}

var _ storage.Query = (*fileQuery)(nil)

// Where adds an attribute-equality filter
func (q *fileQuery) Where(field string, value interface{}) storage.Query {
	next := &fileQuery{store: q.store, kind: q.kind, err: q.err}
	next.conds = append(append(next.conds, q.conds...), condition{field: field, value: value})
	return next
}

// All runs the scan and returns every match
func (q *fileQuery) All() ([]models.Entity, error) {
	return q.run(0)
}

// First returns the first match, with ok reporting presence
func (q *fileQuery) First() (models.Entity, bool, error) {
	matches, err := q.run(1)
	if err != nil {
		return nil, false, err
	}
	if len(matches) == 0 {
		return nil, false, nil
	}
	return matches[0], true, nil
}

// Count returns the number of matches
func (q *fileQuery) Count() (int64, error) {
	matches, err := q.run(0)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

// run validates the filter fields and scans the identity map. limit 0 means
// no limit.
func (q *fileQuery) run(limit int) ([]models.Entity, error) {
	if q.err != nil {
		return nil, q.err
	}
	if !models.Registered(q.kind) {
		return nil, apperrors.NewUnknownTypeError(string(q.kind))
	}

	fields, err := codec.Fields(q.kind)
	if err != nil {
		return nil, err
	}
	for _, c := range q.conds {
		if !fields[c.field] {
			return nil, apperrors.NewInvalidQueryError("unknown field " + c.field + " for " + q.kind.String())
		}
	}

	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	var matches []models.Entity
	for key, e := range q.store.objects {
		if key.Kind != q.kind {
			continue
		}
		ok, err := q.matches(e)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		matches = append(matches, e)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// matches compares the entity's encoded fields against every condition.
func (q *fileQuery) matches(e models.Entity) (bool, error) {
	if len(q.conds) == 0 {
		return true, nil
	}

	doc, err := codec.Encode(e)
	if err != nil {
		return false, err
	}

	for _, c := range q.conds {
		if !reflect.DeepEqual(doc[c.field], normalize(c.value)) {
			return false, nil
		}
	}
	return true, nil
}

// normalize converts a caller-supplied filter value into the same primitive
// shape the encoded documents use, so int filters match json numbers.
func normalize(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
