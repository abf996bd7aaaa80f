package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values
const (
	EnvDatabasePath = "KANUCONTROL_DB"
	EnvDataDir      = "KANUCONTROL_DATA_DIR"
	EnvLogLevel     = "KANUCONTROL_LOG_LEVEL"
	EnvBusyTimeout  = "KANUCONTROL_BUSY_TIMEOUT"
)

// LoadDotEnv loads variables from the given .env files (default ./.env) into
// the process environment. Variables already set win; missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// applyEnv overlays environment variables onto the config
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDatabasePath); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvBusyTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBusyTimeout, err)
		}
		bt := Duration(d)
		c.Database.BusyTimeout = &bt
	}
	return nil
}
