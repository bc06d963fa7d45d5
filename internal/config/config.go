// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all contactcsv configuration.
type Config struct {
	Store   Store   `yaml:"store"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

// Store holds CSV file settings.
type Store struct {
	Path  string        `yaml:"path"`
	Delay time.Duration `yaml:"delay"` // Pause before each write; 0 disables
}

// Display holds console output settings.
type Display struct {
	Plain bool `yaml:"plain"` // Force plain text progress even on a TTY
}

// Log holds diagnostic logging settings.
type Log struct {
	File  string `yaml:"file"`  // Empty disables logging
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Path:  "contacts.csv",
			Delay: time.Second,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Empty and missing paths are skipped, so
// a single missing file yields defaults. Invalid YAML or unknown fields are
// an error.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("config: store.path cannot be empty")
	}
	if c.Store.Delay < 0 {
		return fmt.Errorf("config: store.delay must be non-negative, got %v", c.Store.Delay)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTCSV_FILE, CONTACTCSV_DELAY, CONTACTCSV_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTCSV_FILE"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("CONTACTCSV_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTCSV_DELAY %q: %w", v, err)
		}
		c.Store.Delay = d
	}
	if v := os.Getenv("CONTACTCSV_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store   *rawStore   `yaml:"store"`
	Display *rawDisplay `yaml:"display"`
	Log     *rawLog     `yaml:"log"`
}

type rawStore struct {
	Path  *string        `yaml:"path"`
	Delay *time.Duration `yaml:"delay"`
}

type rawDisplay struct {
	Plain *bool `yaml:"plain"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil {
		if layer.Store.Path != nil {
			c.Store.Path = *layer.Store.Path
		}
		if layer.Store.Delay != nil {
			c.Store.Delay = *layer.Store.Delay
		}
	}
	if layer.Display != nil {
		if layer.Display.Plain != nil {
			c.Display.Plain = *layer.Display.Plain
		}
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
