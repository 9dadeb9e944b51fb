package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServeAddr())
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRACKDESK_API_URL", "https://tracker.example.com")
	t.Setenv("TRACKDESK_HTTP_TIMEOUT", "30s")
	t.Setenv("SERVE_PORT", "9001")
	t.Setenv("SERVE_TOKEN_TTL", "3600")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://tracker.example.com", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "9001", cfg.Serve.Port)
	assert.Equal(t, time.Hour, cfg.Serve.TokenTTL, "bare numbers read as seconds")
}

func TestLoad_AppPortFallback(t *testing.T) {
	t.Setenv("APP_PORT", "9002")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9002", cfg.Serve.Port)
}

func TestValidate_BadURL(t *testing.T) {
	cfg := &Config{APIBaseURL: "not a url"}
	assert.Error(t, cfg.Validate())

	cfg.APIBaseURL = "localhost:8080" // no scheme
	assert.Error(t, cfg.Validate())
}
