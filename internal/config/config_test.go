package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvWithDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cr3t")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	require.Equal(t, "s3cr3t", cfg.Key.SecretKey)
	require.Equal(t, 24*time.Hour, cfg.Key.TTL)
	require.Equal(t, DriverJSON, cfg.Storage.Driver)
	require.Equal(t, "data/User.json", cfg.Storage.UsersFile)
	require.Equal(t, "data/Book.json", cfg.Storage.BooksFile)
	require.Equal(t, "0.0.0.0:8080", cfg.Address())
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.NotContains(t, cfg.String(), "s3cr3t")
}

func TestLoad_RequiresSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET_KEY")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
is_debug: true
listen:
  bind_ip: 127.0.0.1
  port: "9000"
storage:
  driver: sqlite
  dsn: catalog.db
authorization:
  key: from-file
  ttl: 2h
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("PORT", "9100")
	os.Unsetenv("JWT_SECRET_KEY")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.IsDebug)
	require.Equal(t, "127.0.0.1:9100", cfg.Address())
	require.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.Equal(t, "catalog.db", cfg.Storage.DSN)
	require.Equal(t, "from-file", cfg.Key.SecretKey)
	require.Equal(t, 2*time.Hour, cfg.Key.TTL)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "x")
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorContains(t, err, "unknown driver")
}

func TestLoad_SQLDriverNeedsDSN(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "x")
	t.Setenv("STORAGE_DRIVER", "postgres")
	os.Unsetenv("DATABASE_DSN")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorContains(t, err, "dsn is required")
}
