package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, []string{"en", "es"}, cfg.Templates.Languages)
		assert.Equal(t, 3, cfg.Templates.TranslateConcurrency)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
server:
  addr: ":9090"
database:
  driver: postgres
  dsn: "postgres://listo@localhost/listo?sslmode=disable"
templates:
  languages: [en, fr, de]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, []string{"en", "fr", "de"}, cfg.Templates.Languages)
		assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("LISTO_ADMIN_SECRET", "hunter2")
		t.Setenv("LISTO_AI_API_KEY", "k-123")

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "hunter2", cfg.Admin.Secret)
		assert.Equal(t, "k-123", cfg.AI.APIKey)
	})

	t.Run("unknown driver rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mysql\n"), 0o644))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Server.Addr = ":7000"
	cfg.AI.APIKey = "secret"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", loaded.Server.Addr)
	assert.Empty(t, loaded.AI.APIKey, "api key must not be persisted")
}
