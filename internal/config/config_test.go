package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-logbook-api/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOGBOOK_CONFIG", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "IT_Logbook", cfg.Export.WorkPrefix)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=logbook sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  driver: sqlite
  sqlite_path: /tmp/logbook.db
export:
  work_prefix: Work
`), 0o600))

	t.Setenv("LOGBOOK_CONFIG", path)
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/logbook.db", cfg.Database.SQLitePath)
	assert.Equal(t, "Work", cfg.Export.WorkPrefix)
	assert.Equal(t, "Backup_DB_Logs", cfg.Export.BackupPrefix)
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
	t.Setenv("LOGBOOK_CONFIG", path)

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("LOGBOOK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = config.Load()
	assert.Error(t, err)
}
