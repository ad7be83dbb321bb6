package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/config"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: development\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, ":8000", cfg.HTTP.Addr)
	require.Equal(t, "migrations", cfg.Migrations.Dir)
	require.Equal(t, "admin", cfg.Superuser.Username)
	require.Equal(t, "admin@example.com", cfg.Superuser.Email)
	require.Equal(t, 5*time.Second, cfg.Supervisor.RestartDelay)
	require.Equal(t, ":5555", cfg.Monitor.Addr)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: production
migrations:
  dir: /srv/eleganza/migrations
supervisor:
  restartDelay: 30s
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "/srv/eleganza/migrations", cfg.Migrations.Dir)
	require.Equal(t, 30*time.Second, cfg.Supervisor.RestartDelay)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ELEGANZA_SUPERUSER_USERNAME", "root")
	t.Setenv("ELEGANZA_SUPERUSER_PASSWORD", "S3cretPass")

	path := writeConfig(t, "environment: development\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "root", cfg.Superuser.Username)
	require.Equal(t, "S3cretPass", cfg.Superuser.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
