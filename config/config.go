// Package config loads server configuration from an optional YAML file.
// Command-line flags override file values; the zero config is usable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// Database is the SQLite database path. ":memory:" is accepted.
	Database string `yaml:"database"`

	// AllowedOrigins is the CORS allow-list for the frontend.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// DefaultOwner is used by report routes when no owner query
	// parameter is given. Dev/demo convenience only.
	DefaultOwner string `yaml:"default_owner"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:           8080,
		Database:       "finance.db",
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		DefaultOwner:   "demo-owner",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("parse config: invalid port %d", cfg.Port)
	}
	return cfg, nil
}
