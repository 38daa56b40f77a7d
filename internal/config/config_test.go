package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "CACHE_TTL_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Defaults().Server.Port, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 10*time.Minute, cfg.CacheTTL())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
port = "9090"

[database]
driver = "pgx"
dsn = "postgres://localhost/tours"

[search]
policy = "sum"
branch_and_bound = false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("PORT", "7070")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("VALUE_POLICY", "")
	t.Setenv("BRANCH_AND_BOUND", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Server.Port)
	require.Equal(t, "pgx", cfg.Database.Driver)
	require.Equal(t, "postgres://localhost/tours", cfg.Database.DSN)
	require.Equal(t, "sum", cfg.Search.Policy)
	require.False(t, cfg.Search.BranchAndBound)
	require.Equal(t, 30*time.Second, cfg.CacheTTL())
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("SEED_WATCH", "maybe")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport="), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestGetFallback(t *testing.T) {
	t.Setenv("TOURPKG_TEST_KEY", "  ")
	require.Equal(t, "x", Get("TOURPKG_TEST_KEY", "x"))

	t.Setenv("TOURPKG_TEST_KEY", "y")
	require.Equal(t, "y", Get("TOURPKG_TEST_KEY", "x"))
}
