// Package dbstore is the relational storage backend: the same object-access
// contract as the file store, translated onto a pooled Postgres connection.
// Writes stage inside a session transaction (the unit of work) and become
// durable only when Save commits; cascades run inside the same transaction
// as their parent delete.
package dbstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/config"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/pkg/logger"
	"github.com/mensah/schoolms/internal/storage"
	"github.com/mensah/schoolms/internal/storage/codec"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// DBStore implements the storage contract over a relational engine. One
// session transaction is open at a time; reads go through it so staged
// writes stay session-visible before commit.
type DBStore struct {
	db *gorm.DB

	mu sync.Mutex
	tx *gorm.DB
}

var _ storage.Store = (*DBStore)(nil)

// New connects to the configured Postgres database, bounds the connection
// pool, and creates the schema for every registered kind if absent. Missing
// connection parameters fail with ErrConfiguration; nothing falls back
// silently.
func New(cfg *config.Config) (*DBStore, error) {
	if cfg.Database.User == "" || cfg.Database.Password == "" ||
		cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, apperrors.NewConfigurationError("relational backend requires user, password, host, and database name")
	}

	db, err := gorm.Open(postgres.Open(cfg.GetPostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.NewStorageBackendError("connect", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.NewStorageBackendError("acquire pool", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	s := &DBStore{db: db}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	logger.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Relational store connected")
	return s, nil
}

// session returns the open unit-of-work transaction, beginning one if
// needed. Caller holds the mutex.
func (s *DBStore) session() (*gorm.DB, error) {
	if s.tx == nil {
		tx := s.db.Begin()
		if tx.Error != nil {
			return nil, apperrors.NewStorageBackendError("begin transaction", tx.Error)
		}
		s.tx = tx
	}
	return s.tx, nil
}

// All issues one query per requested kind (or all registered kinds) and
// materializes the rows through the codec's decode path.
func (s *DBStore) All(kinds ...models.Kind) ([]models.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(kinds) == 0 {
		kinds = models.Kinds()
	}

	tx, err := s.session()
	if err != nil {
		return nil, err
	}

	var out []models.Entity
	for _, kind := range kinds {
		proto, ok := models.NewOf(kind)
		if !ok {
			return nil, apperrors.NewUnknownTypeError(string(kind))
		}

		var rows []map[string]interface{}
		if err := tx.Table(proto.TableName()).Find(&rows).Error; err != nil {
			return nil, apperrors.NewStorageBackendError("select "+proto.TableName(), err)
		}

		for _, row := range rows {
			entity, err := decodeRow(kind, row)
			if err != nil {
				return nil, err
			}
			out = append(out, entity)
		}
	}
	return out, nil
}

// GetByID translates to WHERE id = ?. Absence is reported through ok;
// backend read failures are logged and reported as absence, per the
// contract's sentinel-only signature.
func (s *DBStore) GetByID(kind models.Kind, id string) (models.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(kind, id)
}

// getLocked is GetByID with the mutex already held.
func (s *DBStore) getLocked(kind models.Kind, id string) (models.Entity, bool) {
	proto, ok := models.NewOf(kind)
	if !ok {
		return nil, false
	}

	tx, err := s.session()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open session for lookup")
		return nil, false
	}

	var rows []map[string]interface{}
	if err := tx.Table(proto.TableName()).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		logger.Error().Err(err).Str("table", proto.TableName()).Msg("Lookup query failed")
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	entity, err := decodeRow(kind, rows[0])
	if err != nil {
		logger.Error().Err(err).Str("table", proto.TableName()).Msg("Failed to materialize row")
		return nil, false
	}
	return entity, true
}

// Query opens a composable cursor; nothing executes until a terminal
// operation runs.
func (s *DBStore) Query(kind models.Kind) storage.Query {
	return &dbQuery{store: s, kind: kind}
}

// New validates the entity, checks its reference rules through the open
// session, and stages an insert-or-replace in the unit of work.
func (s *DBStore) New(e models.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stageLocked(e)
}

// stageLocked stages one entity. Caller holds the mutex.
func (s *DBStore) stageLocked(e models.Entity) error {
	e.Init()
	if err := e.Validate(); err != nil {
		return err
	}
	if err := storage.CheckReferences(lockedGetter{s}, e); err != nil {
		return err
	}

	tx, err := s.session()
	if err != nil {
		return err
	}

	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(e).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Save stages any given entities and commits the unit of work. On failure
// the transaction is rolled back before the error surfaces; no partial
// commit is ever observable.
func (s *DBStore) Save(entities ...models.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entities {
		if err := s.stageLocked(e); err != nil {
			return err
		}
	}

	if s.tx == nil {
		return nil
	}

	if err := s.tx.Commit().Error; err != nil {
		s.tx.Rollback()
		s.tx = nil
		return apperrors.NewStorageBackendError("commit", err)
	}
	s.tx = nil
	return nil
}

// Delete removes the entity and commits; its cascades run inside the same
// transaction as the parent delete.
func (s *DBStore) Delete(e models.Entity) error {
	return s.DeleteByID(e.Kind(), e.EntityID())
}

// DeleteByID deletes by kind and id with cascades, all-or-nothing.
func (s *DBStore) DeleteByID(kind models.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proto, ok := models.NewOf(kind)
	if !ok {
		return apperrors.NewUnknownTypeError(string(kind))
	}
	if _, found := s.getLocked(kind, id); !found {
		return apperrors.NewNotFoundError(string(kind), id)
	}

	tx, err := s.session()
	if err != nil {
		return err
	}

	if err := s.cascadeDelete(tx, kind, id); err != nil {
		tx.Rollback()
		s.tx = nil
		return err
	}
	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", proto.TableName()), id).Error; err != nil {
		tx.Rollback()
		s.tx = nil
		return apperrors.NewStorageBackendError("delete "+proto.TableName(), err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		s.tx = nil
		return apperrors.NewStorageBackendError("commit delete", err)
	}
	s.tx = nil
	return nil
}

// cascadeDelete applies the cascade rule table inside the given transaction.
// Children that themselves cascade are removed row by row so their own rules
// apply; leaf kinds go in one statement.
func (s *DBStore) cascadeDelete(tx *gorm.DB, kind models.Kind, id string) error {
	for _, rule := range storage.Cascades[kind] {
		childProto, ok := models.NewOf(rule.Child)
		if !ok {
			return apperrors.NewUnknownTypeError(string(rule.Child))
		}

		if len(storage.Cascades[rule.Child]) > 0 {
			var childIDs []string
			err := tx.Table(childProto.TableName()).
				Where(fmt.Sprintf("%s = ?", rule.Field), id).
				Pluck("id", &childIDs).Error
			if err != nil {
				return apperrors.NewStorageBackendError("select cascade children", err)
			}
			for _, childID := range childIDs {
				if err := s.cascadeDelete(tx, rule.Child, childID); err != nil {
					return err
				}
				del := fmt.Sprintf("DELETE FROM %s WHERE id = ?", childProto.TableName())
				if err := tx.Exec(del, childID).Error; err != nil {
					return apperrors.NewStorageBackendError("cascade delete "+childProto.TableName(), err)
				}
			}
			continue
		}

		del := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", childProto.TableName(), rule.Field)
		if err := tx.Exec(del, id).Error; err != nil {
			return apperrors.NewStorageBackendError("cascade delete "+childProto.TableName(), err)
		}
	}
	return nil
}

// Reload discards the current unit of work and opens a fresh one.
// Already-committed data is unaffected.
func (s *DBStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	_, err := s.session()
	return err
}

// Close rolls back any open unit of work and releases the session. Safe to
// call repeatedly; the pool itself stays open until Disconnect.
func (s *DBStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	return nil
}

// Disconnect closes the underlying connection pool. Used at process
// shutdown, not by the storage contract.
func (s *DBStore) Disconnect() error {
	s.Close()

	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.NewStorageBackendError("acquire pool", err)
	}
	return sqlDB.Close()
}

// translateWriteError maps driver errors onto the storage taxonomy.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.ErrConflict
	}
	return apperrors.NewStorageBackendError("stage write", err)
}

// decodeRow adapts a row map to the codec's decode path: driver values are
// normalized to the flat primitive forms the codec expects, then tagged with
// the kind discriminator.
func decodeRow(kind models.Kind, row map[string]interface{}) (models.Entity, error) {
	doc := make(map[string]interface{}, len(row)+1)
	for column, value := range row {
		switch v := value.(type) {
		case nil:
			continue
		case time.Time:
			doc[column] = v.UTC().Format(models.TimeLayout)
		case []byte:
			doc[column] = string(v)
		default:
			doc[column] = v
		}
	}
	doc[codec.ClassKey] = string(kind)
	return codec.Decode(doc)
}

// lockedGetter resolves reference rules through the open session while the
// caller already holds the store mutex.
type lockedGetter struct {
	store *DBStore
}

func (g lockedGetter) GetByID(kind models.Kind, id string) (models.Entity, bool) {
	return g.store.getLocked(kind, id)
}
