// Package config provides configuration management for KanuControl.
//
// The config file only says where the store lives and how chatty the process
// is; all club data lives in the store.
//
// Config file locations (priority order):
//  1. $KANUCONTROL_CONFIG
//  2. ./kanucontrol.yaml
//  3. $XDG_CONFIG_HOME/kanucontrol/config.yaml
//  4. ~/.config/kanucontrol/config.yaml
//  5. /etc/kanucontrol/config.yaml
//
// Variables from ./.env and the process environment override file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBusyTimeout = 5 * time.Second
	defaultLogLevel    = "info"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.applyEnv(os.LookupEnv); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, path, err
	}
	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	bt := Duration(defaultBusyTimeout)
	return &Config{
		Version:  1,
		Database: DatabaseConfig{Path: DefaultDatabasePath(), BusyTimeout: &bt},
		Log:      LogConfig{Level: defaultLogLevel},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath()
	}
	if c.Database.BusyTimeout == nil || *c.Database.BusyTimeout <= 0 {
		bt := Duration(defaultBusyTimeout)
		c.Database.BusyTimeout = &bt
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

// BusyTimeout returns the configured lock wait of the store
func (c *Config) BusyTimeout() time.Duration {
	if c.Database.BusyTimeout == nil {
		return defaultBusyTimeout
	}
	return c.Database.BusyTimeout.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Database: %s, Busy timeout: %s, Log level: %s",
		c.Database.Path, c.BusyTimeout(), c.Log.Level)
}
