package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ACTIVITIES_API_URL", "BANNER_HIDE_DELAY", "UPSTREAM_TIMEOUT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8000", cfg.ActivitiesAPI)
	assert.Equal(t, 5*time.Second, cfg.BannerHideDelay)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACTIVITIES_API_URL", "http://api.internal:8000/")
	t.Setenv("BANNER_HIDE_DELAY", "1500ms")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "http://api.internal:8000", cfg.ActivitiesAPI)
	assert.Equal(t, 1500*time.Millisecond, cfg.BannerHideDelay)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("UPSTREAM_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive banner delay", func(t *testing.T) {
		t.Setenv("BANNER_HIDE_DELAY", "0s")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("does not override existing values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PORT=7000\nLOG_LEVEL=warn\n"), 0o600))
		t.Setenv("PORT", "9000")
		t.Setenv("LOG_LEVEL", "")
		require.NoError(t, os.Unsetenv("LOG_LEVEL"))

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "9000", os.Getenv("PORT"))
		assert.Equal(t, "warn", os.Getenv("LOG_LEVEL"))
	})
}
