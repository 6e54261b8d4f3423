package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "inslake"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/inslake by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files and the default
// local lake location.
// Returns ~/.cache/inslake by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/inslake/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml ingestion
// manifest.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// DefaultDataDir returns where generated CSV files live unless overridden.
// Returns ~/.local/share/inslake/data by default.
func DefaultDataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// DefaultLakePath returns the default sqlite lake file.
func DefaultLakePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "lake.db")
}

// ResolvedDataDir returns the configured data directory, falling back to
// the default under HomeDir.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir(c.HomeDir)
}

// ResolvedStoragePath returns the configured local storage path, falling
// back to the default under HomeDir.
func (c *Config) ResolvedStoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultLakePath(c.HomeDir)
}
