// Package config holds runtime settings, read from a config file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DatabasePath is the sqlite file holding provisioned station lists
	// and the zip code table.
	DatabasePath string

	// BoundaryPath is an optional coastal boundary shapefile. Empty means
	// the gate falls back to its built-in inland zones.
	BoundaryPath string

	// CacheTTL bounds how long fetched payloads stay usable.
	CacheTTL time.Duration

	// StaggerDelay is the inter-request delay during bulk cache refresh.
	StaggerDelay time.Duration

	// MetricsAddr, when set, serves Prometheus metrics (e.g. ":9090").
	MetricsAddr string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from ~/.buoyant.yaml (when present) and
// BUOYANT_* environment variables, applying defaults where unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("buoyant")
	v.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	v.SetDefault("database_path", filepath.Join(home, ".buoyant", "stations.db"))
	v.SetDefault("boundary_path", "")
	v.SetDefault("cache_ttl", "30m")
	v.SetDefault("stagger_delay", "500ms")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_level", "info")

	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".buoyant")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cacheTTL, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}
	staggerDelay, err := time.ParseDuration(v.GetString("stagger_delay"))
	if err != nil {
		return nil, fmt.Errorf("invalid stagger_delay: %w", err)
	}

	return &Config{
		DatabasePath: v.GetString("database_path"),
		BoundaryPath: v.GetString("boundary_path"),
		CacheTTL:     cacheTTL,
		StaggerDelay: staggerDelay,
		MetricsAddr:  v.GetString("metrics_addr"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}
