// Package config loads quickdocs configuration.
//
// Sources, lowest to highest precedence:
//   - built-in defaults
//   - quickdocs.yaml (searched in . and ./configs, or an explicit file)
//   - environment variables prefixed QUICKDOCS_ (dots become underscores,
//     e.g. QUICKDOCS_STORE_DSN); a .env file is loaded first if present
//   - command-line flags
package config

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Query   QueryConfig   `mapstructure:"query"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig selects and sizes the relational store.
type StoreConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// QueryConfig bounds query processing.
type QueryConfig struct {
	// Timeout bounds every store round-trip.
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig points at an optional YAML catalog.
// An empty Path means the built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the Prometheus endpoint. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default values.
const (
	DefaultDriver       = "sqlite3"
	DefaultDSN          = "quickdocs.db"
	DefaultMaxOpenConns = 4
	DefaultTimeout      = 30 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Validate checks the configuration for values the rest of the program
// cannot use.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("store.driver must be sqlite3 or postgres, got %q", c.Store.Driver)
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required")
	}
	if c.Store.MaxOpenConns <= 0 {
		return fmt.Errorf("store.max_open_conns must be positive, got %d", c.Store.MaxOpenConns)
	}
	if c.Query.Timeout <= 0 {
		return fmt.Errorf("query.timeout must be positive, got %s", c.Query.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
