package facade

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/config"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage/filestore"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Engine = config.EngineFile
	cfg.Storage.FilePath = filepath.Join(t.TempDir(), "school.json")
	return cfg
}

func TestOpenDefaultsToFileStore(t *testing.T) {
	reset()
	cfg := fileConfig(t)
	cfg.Storage.Engine = ""

	store, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { reset() })

	_, ok := store.(*filestore.FileStore)
	assert.True(t, ok)
	assert.Same(t, store, Active())
}

func TestOpenTwiceFails(t *testing.T) {
	reset()
	_, err := Open(fileConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { reset() })

	_, err = Open(fileConfig(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestOpenUnknownEngine(t *testing.T) {
	reset()
	cfg := fileConfig(t)
	cfg.Storage.Engine = "cloud"

	_, err := Open(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestShutdownWithoutOpen(t *testing.T) {
	reset()
	assert.NoError(t, Shutdown())
}

func TestShutdownClearsActive(t *testing.T) {
	reset()
	store, err := Open(fileConfig(t))
	require.NoError(t, err)

	require.NoError(t, store.Save(&models.Feedback{Content: "hi", UserID: "u1"}))
	require.NoError(t, Shutdown())
	assert.Nil(t, Active())

	// a fresh Open is allowed after Shutdown
	_, err = Open(fileConfig(t))
	require.NoError(t, err)
	reset()
}
