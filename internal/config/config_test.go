package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep a real ~/.buoyant.yaml out of the test

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.DatabasePath, ".buoyant")
	assert.Empty(t, cfg.BoundaryPath)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.StaggerDelay)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BUOYANT_CACHE_TTL", "5m")
	t.Setenv("BUOYANT_LOG_LEVEL", "debug")
	t.Setenv("BUOYANT_BOUNDARY_PATH", "/var/lib/buoyant/coast.shp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/lib/buoyant/coast.shp", cfg.BoundaryPath)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BUOYANT_CACHE_TTL", "not-a-duration")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid cache_ttl")
}
