package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "KANUCONTROL_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "kanucontrol.yaml"
	// AppDirName is the config and data directory name under XDG
	AppDirName = "kanucontrol"

	// DatabaseDirName and DatabaseFileName locate the store inside the data directory
	DatabaseDirName  = "database"
	DatabaseFileName = "KanuControl.sqlite"
)

// configCandidates lists where a config file may live, highest priority first:
// $KANUCONTROL_CONFIG, ./kanucontrol.yaml, $XDG_CONFIG_HOME/kanucontrol/config.yaml,
// ~/.config/kanucontrol/config.yaml and /etc/kanucontrol/config.yaml.
// Unset variables contribute no candidate.
func configCandidates() []string {
	var candidates []string
	add := func(path string, ok bool) {
		if ok && path != "" {
			candidates = append(candidates, path)
		}
	}

	add(os.LookupEnv(EnvConfigPath))
	if abs, err := filepath.Abs(ConfigFileName); err == nil {
		add(abs, true)
	} else {
		add(ConfigFileName, true)
	}
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		add(filepath.Join(xdgHome, AppDirName, "config.yaml"), true)
	}
	if home := os.Getenv("HOME"); home != "" {
		add(filepath.Join(home, ".config", AppDirName, "config.yaml"), true)
	}
	add(filepath.Join("/etc", AppDirName, "config.yaml"), true)
	return candidates
}

// FindConfigPath returns the first existing config file of configCandidates,
// or "" when there is none
func FindConfigPath() string {
	for _, path := range configCandidates() {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// DefaultConfigPath returns the preferred location for a new config file
// Prefers XDG config home, falls back to working directory
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, AppDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", AppDirName, "config.yaml")
	}
	return ConfigFileName
}

// DataDir returns the application-private data directory:
// $KANUCONTROL_DATA_DIR, $XDG_DATA_HOME/kanucontrol, ~/.local/share/kanucontrol
// or ./data as last resort
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppDirName)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share", AppDirName)
	}
	return "data"
}

// DefaultDatabasePath returns where the store lives when no path is configured
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), DatabaseDirName, DatabaseFileName)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
