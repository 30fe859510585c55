package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8000, cfg.Port)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, "./processed", cfg.ProcessedDir)
		assert.Equal(t, 2, cfg.WorkerCount)
		assert.Equal(t, 30*time.Minute, cfg.DownloadTimeout)
		assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("HOST", "0.0.0.0")
		t.Setenv("PORT", "9000")
		t.Setenv("PROCESSED_DIR", "/srv/processed")
		t.Setenv("WORKER_COUNT", "4")
		t.Setenv("DOWNLOAD_TIMEOUT", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Host)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, "/srv/processed", cfg.ProcessedDir)
		assert.Equal(t, 4, cfg.WorkerCount)
		assert.Equal(t, 5*time.Minute, cfg.DownloadTimeout)
		assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
		assert.Equal(t, "http://0.0.0.0:9000", cfg.PublicBaseURL)
	})

	t.Run("explicit public base url wins and loses trailing slash", func(t *testing.T) {
		t.Setenv("PUBLIC_BASE_URL", "https://videos.example.com/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://videos.example.com", cfg.PublicBaseURL)
	})

	t.Run("rejects a non-numeric port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")

		_, err := Load()
		assert.Error(t, err)
	})
}
