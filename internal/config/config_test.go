package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, "reject", cfg.MissingQuantity)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.OriginPatterns)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CART_MISSING_QUANTITY", "default_one")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com")
	t.Setenv("ORIGIN_PATTERNS", `^https://preview-[a-z0-9]+\.example\.com$`)
	t.Setenv("SCYLLA_HOSTS", "10.0.0.1,10.0.0.2")

	var cfg Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "default_one", cfg.MissingQuantity)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.AllowedOrigins)
	assert.Len(t, cfg.OriginPatterns, 1)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.ScyllaHosts)
}
