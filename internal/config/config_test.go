package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "https://icrew.upsvac.com", cfg.UPSVAC.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.UPSVAC.FetchTimeout)
	assert.Equal(t, "@every 1h", cfg.UPSVAC.RefreshCron)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("UPSVAC_BASE_URL", "http://localhost:8000")
	t.Setenv("UPSVAC_REFRESH_CRON", "@every 15m")
	t.Setenv("UPSVAC_FETCH_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "http://localhost:8000", cfg.UPSVAC.BaseURL)
	assert.Equal(t, "@every 15m", cfg.UPSVAC.RefreshCron)
	assert.Equal(t, 30*time.Second, cfg.UPSVAC.FetchTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")

	t.Setenv("SERVER_PORT", "70000")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SERVER_WRITE_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_WRITE_TIMEOUT")
}

func TestAllowedOrigins(t *testing.T) {
	assert.Nil(t, HTTPConfig{}.AllowedOrigins())
	assert.Nil(t, HTTPConfig{AllowedOriginsCSV: "  "}.AllowedOrigins())
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		HTTPConfig{AllowedOriginsCSV: " https://a.example, https://b.example ,"}.AllowedOrigins())
}
