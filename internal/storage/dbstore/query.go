package dbstore

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
	"github.com/mensah/schoolms/internal/storage/codec"
)

// condition is one attribute-equality filter awaiting SQL translation.
type condition struct {
	field string
	value interface{}
}

// dbQuery is a composable cursor over one kind. Conditions accumulate on
// Where and only turn into SQL when a terminal operation runs, so callers
// may keep adding filters before materializing.
type dbQuery struct {
	store *DBStore
	kind  models.Kind
	conds []condition
}

var _ storage.Query = (*dbQuery)(nil)

// Where adds an attribute-equality filter
func (q *dbQuery) Where(field string, value interface{}) storage.Query {
	next := &dbQuery{store: q.store, kind: q.kind}
	next.conds = append(append(next.conds, q.conds...), condition{field: field, value: value})
	return next
}

// All materializes every matching row
func (q *dbQuery) All() ([]models.Entity, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	stmt, proto, err := q.build()
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := stmt.Find(&rows).Error; err != nil {
		return nil, apperrors.NewStorageBackendError("select "+proto.TableName(), err)
	}

	out := make([]models.Entity, 0, len(rows))
	for _, row := range rows {
		entity, err := decodeRow(q.kind, row)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// First materializes the first matching row, with ok reporting presence
func (q *dbQuery) First() (models.Entity, bool, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	stmt, proto, err := q.build()
	if err != nil {
		return nil, false, err
	}

	var rows []map[string]interface{}
	if err := stmt.Limit(1).Find(&rows).Error; err != nil {
		return nil, false, apperrors.NewStorageBackendError("select "+proto.TableName(), err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	entity, err := decodeRow(q.kind, rows[0])
	if err != nil {
		return nil, false, err
	}
	return entity, true, nil
}

// Count returns the number of matching rows without materializing them
func (q *dbQuery) Count() (int64, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	stmt, proto, err := q.build()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := stmt.Count(&count).Error; err != nil {
		return 0, apperrors.NewStorageBackendError("count "+proto.TableName(), err)
	}
	return count, nil
}

// build validates the filter fields against the kind's declared set and
// translates the cursor into a statement on the open session. Caller holds
// the store mutex.
func (q *dbQuery) build() (*gorm.DB, models.Entity, error) {
	proto, ok := models.NewOf(q.kind)
	if !ok {
		return nil, nil, apperrors.NewUnknownTypeError(string(q.kind))
	}

	fields, err := codec.Fields(q.kind)
	if err != nil {
		return nil, nil, err
	}

	tx, err := q.store.session()
	if err != nil {
		return nil, nil, err
	}

	stmt := tx.Table(proto.TableName())
	for _, c := range q.conds {
		if !fields[c.field] {
			return nil, nil, apperrors.NewInvalidQueryError("unknown field " + c.field + " for " + q.kind.String())
		}
		stmt = stmt.Where(fmt.Sprintf("%s = ?", c.field), c.value)
	}
	return stmt, proto, nil
}
