package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "VOCABGRAPH_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "vocabgraph.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "vocabgraph"
)

// FindConfigPath searches for config file in priority order:
// 1. $VOCABGRAPH_CONFIG (explicit path)
// 2. ./vocabgraph.yaml (working directory)
// 3. $XDG_CONFIG_HOME/vocabgraph/config.yaml
// 4. ~/.config/vocabgraph/config.yaml
// 5. /etc/vocabgraph/config.yaml
//
// Returns empty string if no config file found
func FindConfigPath() string {
	// 1. Explicit environment variable
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	// 2. Working directory
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	// 3. XDG config home
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	// 4. Default XDG location (~/.config)
	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	// 5. System-wide
	systemPath := filepath.Join("/etc", ConfigDirName, "config.yaml")
	if fileExists(systemPath) {
		return systemPath
	}

	// No config found
	return ""
}

// WatchPath returns the config path watch mode should observe: the file the
// search located, or the default name in the working directory so a config
// created later still takes effect.
func WatchPath(found string) string {
	if found != "" {
		return found
	}
	return ConfigFileName
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
