package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDatabasePath: "/data/club.sqlite",
		EnvLogLevel:     "debug",
		EnvBusyTimeout:  "250ms",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := &Config{Database: DatabaseConfig{Path: "/from/file.sqlite"}, Log: LogConfig{Level: "error"}}
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}

	if cfg.Database.Path != "/data/club.sqlite" {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
	if cfg.BusyTimeout() != 250*time.Millisecond {
		t.Errorf("BusyTimeout() = %s, want 250ms", cfg.BusyTimeout())
	}
}

func TestApplyEnvKeepsFileValues(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Path: "/from/file.sqlite"}}
	empty := func(string) (string, bool) { return "", false }

	if err := cfg.applyEnv(empty); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	if cfg.Database.Path != "/from/file.sqlite" {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
}

func TestApplyEnvInvalidDuration(t *testing.T) {
	cfg := &Config{}
	lookup := func(key string) (string, bool) {
		if key == EnvBusyTimeout {
			return "soon", true
		}
		return "", false
	}

	if err := cfg.applyEnv(lookup); err == nil {
		t.Error("applyEnv() should reject an invalid duration")
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvLogLevel+"=debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Errorf("%s = %q, want debug", EnvLogLevel, got)
	}
}
