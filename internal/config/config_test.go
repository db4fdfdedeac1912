package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, EngineFile, cfg.Storage.Engine)
	assert.NotEmpty(t, cfg.Storage.FilePath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
storage:
  engine: "file"
  file_path: "data/test.json"
logging:
  level: "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "data/test.json", cfg.Storage.FilePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORAGE_ENGINE", "file")
	t.Setenv("STORAGE_FILE_PATH", "env/store.json")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env/store.json", cfg.Storage.FilePath)
}

func TestPostgresRequiresConnectionParams(t *testing.T) {
	t.Setenv("STORAGE_ENGINE", "postgres")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestPostgresConfigComplete(t *testing.T) {
	t.Setenv("STORAGE_ENGINE", "postgres")
	t.Setenv("STORAGE_USER", "school")
	t.Setenv("STORAGE_PASSWORD", "secret")
	t.Setenv("STORAGE_HOST", "db.internal")
	t.Setenv("STORAGE_DATABASE", "schoolms")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, EnginePostgres, cfg.Storage.Engine)
	assert.Contains(t, cfg.GetPostgresDSN(), "@db.internal:")
	assert.Contains(t, cfg.GetPostgresDSN(), "/schoolms?sslmode=disable")
}

func TestUnknownEngineRejected(t *testing.T) {
	t.Setenv("STORAGE_ENGINE", "cloud")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}
