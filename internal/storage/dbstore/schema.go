package dbstore

import (
	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

// prototypes returns one zero-valued instance per registered kind, in the
// fixed registry order.
func prototypes() []interface{} {
	kinds := models.Kinds()
	out := make([]interface{}, 0, len(kinds))
	for _, kind := range kinds {
		proto, _ := models.NewOf(kind)
		out = append(out, proto)
	}
	return out
}

// migrate creates the table for every entity and association kind if absent.
// Idempotent; existing tables and data are left alone. Foreign keys are
// plain string columns referencing the parent table's id, with referential
// checks enforced by the store's reference rules rather than the schema.
func (s *DBStore) migrate() error {
	if err := s.db.AutoMigrate(prototypes()...); err != nil {
		return apperrors.NewStorageBackendError("create schema", err)
	}
	return nil
}

// DropSchema drops every entity and association table. Schema lifecycle is
// an explicit operation owned by test setup; the store never drops anything
// during construction.
func (s *DBStore) DropSchema() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := s.db.Migrator().DropTable(prototypes()...); err != nil {
		return apperrors.NewStorageBackendError("drop schema", err)
	}
	return nil
}

// ResetSchema drops and recreates every table. Test setup helper.
func (s *DBStore) ResetSchema() error {
	if err := s.DropSchema(); err != nil {
		return err
	}
	return s.migrate()
}
