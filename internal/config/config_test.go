package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "https://consumer-api.development.dev.woltapi.com", cfg.APIBaseURL)
	assert.Equal(t, 8*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.QuoteTimeout)
	assert.Equal(t, 2000, cfg.MaxDeliveryDistance)
	assert.Equal(t, 20.0, cfg.UpstreamRPS)
	assert.Equal(t, 40, cfg.UpstreamBurst)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.VenueFixtures)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("QUOTE_TIMEOUT", "750ms")
	t.Setenv("MAX_DELIVERY_DISTANCE", "0")
	t.Setenv("UPSTREAM_RPS", "2.5")

	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.QuoteTimeout)
	assert.Equal(t, 0, cfg.MaxDeliveryDistance)
	assert.Equal(t, 2.5, cfg.UpstreamRPS)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VENUE_FIXTURES=venues.yml\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "venues.yml", cfg.VenueFixtures)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("MAX_DELIVERY_DISTANCE", "-1")

	_, err := load(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Port: "8000", APIBaseURL: "http://x", HTTPTimeout: time.Second, QuoteTimeout: time.Second}
	assert.NoError(t, valid.Validate())

	noTimeout := valid
	noTimeout.QuoteTimeout = 0
	assert.Error(t, noTimeout.Validate())

	fixturesOnly := valid
	fixturesOnly.APIBaseURL = ""
	fixturesOnly.VenueFixtures = "venues.yml"
	assert.NoError(t, fixturesOnly.Validate())
}
