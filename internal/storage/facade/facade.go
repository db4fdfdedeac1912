// Package facade selects and owns the single storage backend for the
// process. The choice is made once at startup from parsed configuration —
// file-backed unless the relational engine is explicitly configured — and is
// never swapped at runtime.
package facade

import (
	"sync"

	"github.com/mensah/schoolms/internal/config"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/pkg/logger"
	"github.com/mensah/schoolms/internal/storage"
	"github.com/mensah/schoolms/internal/storage/dbstore"
	"github.com/mensah/schoolms/internal/storage/filestore"
)

var (
	mu     sync.Mutex
	active storage.Store
)

// Open constructs the configured backend and records it as the process-wide
// store. A second Open is a configuration error: exactly one store instance
// owns the identity map or session for the lifetime of the process.
func Open(cfg *config.Config) (storage.Store, error) {
	mu.Lock()
	defer mu.Unlock()

	if active != nil {
		return nil, apperrors.NewConfigurationError("storage already initialized")
	}

	switch cfg.Storage.Engine {
	case config.EnginePostgres:
		store, err := dbstore.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.Reload(); err != nil {
			return nil, err
		}
		active = store
	case config.EngineFile, "":
		store, err := filestore.New(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		active = store
	default:
		return nil, apperrors.NewConfigurationError("unknown storage engine " + string(cfg.Storage.Engine))
	}

	logger.Info().Str("engine", string(cfg.Storage.Engine)).Msg("Storage backend selected")
	return active, nil
}

// Active returns the process-wide store, or nil before Open.
func Active() storage.Store {
	mu.Lock()
	defer mu.Unlock()
	return active
}

// Shutdown closes the active store and, for the relational backend, its
// connection pool. Safe to call without a prior Open.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()

	if active == nil {
		return nil
	}

	err := active.Close()
	if d, ok := active.(interface{ Disconnect() error }); ok {
		if derr := d.Disconnect(); err == nil {
			err = derr
		}
	}
	active = nil
	return err
}
