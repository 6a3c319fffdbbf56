package xrosedb

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

// Config holds the settings for the document store and its callers
type Config struct {
	Store   StoreConfig   `json:"store"`
	Layers  LayersConfig  `json:"layers"`
	Logging LoggingConfig `json:"logging"`
}

// StoreConfig contains in-memory store settings
type StoreConfig struct {
	// Identifier names the shared in-memory database. Empty means a fresh uuid.
	Identifier   string        `json:"identifier"`
	DocumentPath string        `json:"documentPath"`
	BusyTimeout  time.Duration `json:"busyTimeout"`
	QueryTimeout time.Duration `json:"queryTimeout"`
}

// LayersConfig contains layer mapping settings
type LayersConfig struct {
	// StrictVariants makes encoding fail on a layer kind it does not know
	// instead of emitting only the root record.
	StrictVariants bool   `json:"strictVariants"`
	SystemFontName string `json:"systemFontName"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level              string        `json:"level"`
	Format             string        `json:"format"`
	LogQueries         bool          `json:"logQueries"`
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			BusyTimeout:  5 * time.Second,
			QueryTimeout: 0,
		},
		Layers: LayersConfig{
			StrictVariants: false,
			SystemFontName: "Helvetica",
		},
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "console",
			LogQueries:         false,
			SlowQueryThreshold: 250 * time.Millisecond,
		},
	}
}

// LoadConfig reads a JSON configuration file over the defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Store.BusyTimeout < 0 {
		return &ConfigError{Field: "store.busyTimeout", Message: "must not be negative"}
	}

	if c.Store.QueryTimeout < 0 {
		return &ConfigError{Field: "store.queryTimeout", Message: "must not be negative"}
	}

	if strings.TrimSpace(c.Layers.SystemFontName) == "" {
		return &ConfigError{Field: "layers.systemFontName", Message: "must not be empty"}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be one of debug, info, warn, error"}
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be json or console"}
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return &ConfigError{Field: "logging.slowQueryThreshold", Message: "must not be negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}
