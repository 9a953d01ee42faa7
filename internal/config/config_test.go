package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  host: localhost\n"))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "file", cfg.Storage.Type)
		assert.Equal(t, "data", cfg.Storage.DataDir)
		assert.Equal(t, "@every 1m", cfg.Scheduler.Autosave)
		assert.Equal(t, "0 0 8 * * *", cfg.Scheduler.OverdueReport)
		assert.Equal(t, 10, cfg.Accounts.BcryptCost)
		assert.Equal(t, 2, cfg.API.ReloadPerMinute)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
		assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	})

	t.Run("Env overrides file", func(t *testing.T) {
		t.Setenv("CLUB_PORT", "9090")
		t.Setenv("CLUB_DATA_DIR", "/var/lib/club")
		t.Setenv("CLUB_AUTOSAVE_SCHEDULE", "@every 30s")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load(writeConfig(t, "server:\n  port: 8000\nstorage:\n  data_dir: ./data\n"))
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/var/lib/club", cfg.Storage.DataDir)
		assert.Equal(t, "@every 30s", cfg.Scheduler.Autosave)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Postgres requires database settings", func(t *testing.T) {
		_, err := Load(writeConfig(t, "storage:\n  type: postgres\n"))
		assert.Error(t, err)

		cfg, err := Load(writeConfig(t, `
storage:
  type: postgres
database:
  host: db
  user: club
  password: secret
  database: memberclub
`))
		require.NoError(t, err)
		assert.Equal(t, "postgres://club:secret@db:5432/memberclub?sslmode=disable", cfg.GetDatabaseConnectionString())
	})

	t.Run("Invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "storage:\n  type: s3\n"))
		assert.Error(t, err)
		_, err = Load(writeConfig(t, "server:\n  port: 70000\n"))
		assert.Error(t, err)
		_, err = Load(writeConfig(t, "accounts:\n  bcrypt_cost: 2\n"))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
