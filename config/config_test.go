package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Fetch.MaxBodyBytes)
	assert.Contains(t, cfg.Fetch.UserAgent, "Chrome")

	assert.Equal(t, 5000, cfg.Extract.BodyTextLimit)
	assert.Equal(t, 1.0, cfg.Extract.InstagramRPS)
	assert.Equal(t, 2, cfg.Extract.InstagramBurst)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.False(t, cfg.Auth.Enabled)
	assert.Empty(t, cfg.Auth.APIKeys)

	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)

	assert.Equal(t, 1000, cfg.Cache.MaxEntries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LINKEXTRACT_FETCH_TIMEOUT", "3s")
	t.Setenv("LINKEXTRACT_BODY_TEXT_LIMIT", "1234")
	t.Setenv("LINKEXTRACT_INSTAGRAM_RPS", "0.5")
	t.Setenv("LINKEXTRACT_PORT", "9999")
	t.Setenv("LINKEXTRACT_AUTH_ENABLED", "true")
	t.Setenv("LINKEXTRACT_API_KEYS", "key-one, key-two, ")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 1234, cfg.Extract.BodyTextLimit)
	assert.Equal(t, 0.5, cfg.Extract.InstagramRPS)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("LINKEXTRACT_FETCH_TIMEOUT", "soon")
	t.Setenv("LINKEXTRACT_PORT", "not-a-port")
	t.Setenv("LINKEXTRACT_AUTH_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Auth.Enabled)
}
