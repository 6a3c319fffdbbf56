package xrosedb

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	// Test store defaults
	if config.Store.Identifier != "" {
		t.Errorf("Expected empty identifier, got %s", config.Store.Identifier)
	}
	if config.Store.BusyTimeout != 5*time.Second {
		t.Errorf("Expected busy timeout to be 5s, got %v", config.Store.BusyTimeout)
	}
	if config.Store.QueryTimeout != 0 {
		t.Errorf("Expected no query timeout, got %v", config.Store.QueryTimeout)
	}

	// Test layer defaults
	if config.Layers.StrictVariants {
		t.Error("Expected strict variants to be disabled by default")
	}
	if config.Layers.SystemFontName != "Helvetica" {
		t.Errorf("Expected system font to be Helvetica, got %s", config.Layers.SystemFontName)
	}

	// Test logging defaults
	if config.Logging.Level != "info" {
		t.Errorf("Expected log level to be info, got %s", config.Logging.Level)
	}
	if config.Logging.LogQueries {
		t.Error("Expected query logging to be disabled by default")
	}
	if config.Logging.SlowQueryThreshold != 250*time.Millisecond {
		t.Errorf("Expected slow query threshold to be 250ms, got %v", config.Logging.SlowQueryThreshold)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}

func TestConfigValidationDetailed(t *testing.T) {
	withConfig := func(mutate func(c *Config)) *Config {
		c := DefaultConfig()
		mutate(c)
		return c
	}

	tests := []struct {
		name        string
		config      *Config
		expectError bool
		errorField  string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name:        "negative busy timeout",
			config:      withConfig(func(c *Config) { c.Store.BusyTimeout = -time.Second }),
			expectError: true,
			errorField:  "store.busyTimeout",
		},
		{
			name:        "negative query timeout",
			config:      withConfig(func(c *Config) { c.Store.QueryTimeout = -time.Second }),
			expectError: true,
			errorField:  "store.queryTimeout",
		},
		{
			name:        "blank system font",
			config:      withConfig(func(c *Config) { c.Layers.SystemFontName = "  " }),
			expectError: true,
			errorField:  "layers.systemFontName",
		},
		{
			name:        "unknown log level",
			config:      withConfig(func(c *Config) { c.Logging.Level = "trace" }),
			expectError: true,
			errorField:  "logging.level",
		},
		{
			name:        "upper case log level",
			config:      withConfig(func(c *Config) { c.Logging.Level = "WARN" }),
			expectError: false,
		},
		{
			name:        "unknown log format",
			config:      withConfig(func(c *Config) { c.Logging.Format = "xml" }),
			expectError: true,
			errorField:  "logging.format",
		},
		{
			name:        "negative slow query threshold",
			config:      withConfig(func(c *Config) { c.Logging.SlowQueryThreshold = -1 }),
			expectError: true,
			errorField:  "logging.slowQueryThreshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("Expected validation error but got none")
				} else if configErr, ok := err.(*ConfigError); ok {
					if configErr.Field != tt.errorField {
						t.Errorf("Expected error field %s, got %s", tt.errorField, configErr.Field)
					}
				} else {
					t.Errorf("Expected ConfigError, got %T", err)
				}
			} else {
				if err != nil {
					t.Errorf("Expected no validation error but got: %v", err)
				}
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "test.field",
		Message: "test message",
	}

	expected := "config validation error for field 'test.field': test message"
	if err.Error() != expected {
		t.Errorf("Expected error message %s, got %s", expected, err.Error())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	if err := os.WriteFile(valid, []byte(`{"store": {"identifier": "doc"}, "layers": {"strictVariants": true}, "logging": {"logQueries": true}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfig(valid)
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if config.Store.Identifier != "doc" {
		t.Errorf("Expected identifier doc, got %s", config.Store.Identifier)
	}
	if !config.Layers.StrictVariants || !config.Logging.LogQueries {
		t.Error("Expected file values to override defaults")
	}
	if config.Layers.SystemFontName != "Helvetica" {
		t.Errorf("Expected unset fields to keep defaults, got %s", config.Layers.SystemFontName)
	}

	malformed := filepath.Join(dir, "malformed.json")
	if err := os.WriteFile(malformed, []byte(`{"store":`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(malformed); err == nil {
		t.Error("Expected malformed config to fail")
	} else if configErr, ok := err.(*ConfigError); !ok || configErr.Field != "file" {
		t.Errorf("Expected file ConfigError, got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"logging": {"level": "loud"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("Expected invalid config to fail validation")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected missing config file to fail")
	}
}
