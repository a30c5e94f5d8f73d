package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the top-level YAML structure.
type Config struct {
	Version  string `yaml:"version"`
	Settings `yaml:",inline"`
	QuickAdd []Preset `yaml:"quick_add"`
}

// Settings holds the values that BEHAVIOUR_* environment variables can override.
type Settings struct {
	Timezone string      `yaml:"timezone" env:"TIMEZONE"`   // IANA name, "Local" or "UTC"
	LogLevel string      `yaml:"log_level" env:"LOG_LEVEL"` // debug | info | warn | error
	Storage  StorageConf `yaml:"storage" envPrefix:"STORAGE_"`
	Metrics  MetricsConf `yaml:"metrics" envPrefix:"METRICS_"`
}

// StorageConf selects the persistence backend.
type StorageConf struct {
	Backend string `yaml:"backend" env:"BACKEND"` // json | sqlite
	Path    string `yaml:"path" env:"PATH"`
}

// MetricsConf controls the optional Prometheus textfile dump.
type MetricsConf struct {
	Textfile string `yaml:"textfile" env:"TEXTFILE"`
}

// Preset is a one-tap event template.
type Preset struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
	Points   int    `yaml:"points"`
	Notes    string `yaml:"notes"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps LogLevel onto slog; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
