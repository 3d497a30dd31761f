package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8089", config.ServerAddr)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, int64(65536), config.MaxBodyBytes)
	assert.Equal(t, 100, config.MaxBatch)
	assert.Equal(t, 10*time.Second, config.ReadTimeout)
	assert.True(t, config.MetricsEnabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("MAX_BATCH", "5")
	t.Setenv("SHUTDOWN_GRACE", "2s")
	t.Setenv("METRICS_ENABLED", "false")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", config.ServerAddr)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "console", config.LogFormat)
	assert.Equal(t, 5, config.MaxBatch)
	assert.Equal(t, 2*time.Second, config.ShutdownGrace)
	assert.False(t, config.MetricsEnabled)
}

func TestLoadConfigRejectsZeroBatch(t *testing.T) {
	t.Setenv("MAX_BATCH", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}
