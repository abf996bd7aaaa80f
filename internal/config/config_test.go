package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// clearEnv isolates a test from KANUCONTROL_* variables of the host
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvDatabasePath, EnvDataDir, EnvLogLevel, EnvBusyTimeout} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/srv/data")

	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	want := filepath.Join("/srv/data", AppDirName, DatabaseDirName, DatabaseFileName)
	if cfg.Database.Path != want {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, want)
	}
	if cfg.BusyTimeout() != 5*time.Second {
		t.Errorf("BusyTimeout() = %s, want 5s", cfg.BusyTimeout())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/var/lib/kanucontrol/club.sqlite"
	bt := Duration(10 * time.Second)
	cfg.Database.BusyTimeout = &bt
	cfg.Log.Level = "debug"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	if loaded.Database.Path != "/var/lib/kanucontrol/club.sqlite" {
		t.Errorf("Database.Path = %s", loaded.Database.Path)
	}
	if loaded.BusyTimeout() != 10*time.Second {
		t.Errorf("BusyTimeout() = %s, want 10s", loaded.BusyTimeout())
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", loaded.Log.Level)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/tmp/kc")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("log:\n  level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Database.Path != filepath.Join("/tmp/kc", DatabaseDirName, DatabaseFileName) {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %s, want error", cfg.Log.Level)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
}

func TestLoadFromPathInvalidYAML(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("database: [oops"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFromPath(configPath); err == nil {
		t.Error("LoadFromPath() should fail on invalid YAML")
	}
}

func TestFindConfigPath(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found = FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestConfigCandidates(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/anna")

	cwdConfig, err := filepath.Abs(ConfigFileName)
	if err != nil {
		t.Fatalf("Abs() error: %v", err)
	}
	want := []string{
		cwdConfig,
		filepath.Join("/xdg", AppDirName, "config.yaml"),
		filepath.Join("/home/anna", ".config", AppDirName, "config.yaml"),
		filepath.Join("/etc", AppDirName, "config.yaml"),
	}
	if got := configCandidates(); !reflect.DeepEqual(got, want) {
		t.Errorf("configCandidates() = %v, want %v", got, want)
	}

	t.Setenv(EnvConfigPath, "/opt/kc.yaml")
	t.Setenv("XDG_CONFIG_HOME", "")
	want = []string{
		"/opt/kc.yaml",
		cwdConfig,
		filepath.Join("/home/anna", ".config", AppDirName, "config.yaml"),
		filepath.Join("/etc", AppDirName, "config.yaml"),
	}
	if got := configCandidates(); !reflect.DeepEqual(got, want) {
		t.Errorf("configCandidates() = %v, want %v", got, want)
	}
}

func TestDataDir(t *testing.T) {
	tests := []struct {
		name    string
		dataDir string
		xdgData string
		home    string
		want    string
	}{
		{"explicit", "/opt/kc", "/xdg", "/home/anna", "/opt/kc"},
		{"xdg data home", "", "/xdg", "/home/anna", filepath.Join("/xdg", AppDirName)},
		{"home", "", "", "/home/anna", filepath.Join("/home/anna", ".local", "share", AppDirName)},
		{"working directory", "", "", "", "data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.dataDir)
			t.Setenv("XDG_DATA_HOME", tt.xdgData)
			t.Setenv("HOME", tt.home)
			if got := DataDir(); got != tt.want {
				t.Errorf("DataDir() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
