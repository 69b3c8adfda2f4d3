package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080/api/v2", cfg.BaseURL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 2*time.Second, cfg.PollInterval)
	})

	t.Run("FromEnvironment", func(t *testing.T) {
		t.Setenv("DAGUKIT_BASE_URL", "https://engine.internal/api/v2")
		t.Setenv("DAGUKIT_DAG_NAME", "nightly")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DAGUKIT_HTTP_TIMEOUT", "5s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://engine.internal/api/v2", cfg.BaseURL)
		assert.Equal(t, "nightly", cfg.DagName)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log level")
	})

	t.Run("InvalidScheme", func(t *testing.T) {
		t.Setenv("DAGUKIT_BASE_URL", "ftp://engine.internal")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("NonPositiveTimeout", func(t *testing.T) {
		t.Setenv("DAGUKIT_HTTP_TIMEOUT", "0s")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("PollTimeoutShorterThanInterval", func(t *testing.T) {
		t.Setenv("DAGUKIT_POLL_INTERVAL", "10s")
		t.Setenv("DAGUKIT_POLL_TIMEOUT", "1s")

		_, err := Load()
		require.Error(t, err)
	})
}
