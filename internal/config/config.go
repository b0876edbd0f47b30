// Package config holds the shell's runtime configuration.
//
// Configuration is environment-driven: every setting has a default and
// an AISH_-prefixed environment variable override. There is no config
// file parsing here.
package config

import (
	"os"
	"path/filepath"
)

// Environment variable names.
const (
	EnvDataDir       = "AISH_DATA_DIR"
	EnvHistoryPath   = "AISH_HISTORY_PATH"
	EnvPluginDir     = "AISH_PLUGIN_DIR"
	EnvLogLevel      = "AISH_LOG_LEVEL"
	EnvLogPath       = "AISH_LOG_PATH"
	EnvAssistantName = "AISH_ASSISTANT_NAME"
)

// Config is the resolved shell configuration.
type Config struct {
	// DataDir holds the history database, log file, and plugins.
	DataDir string

	// HistoryPath is the bbolt database path.
	HistoryPath string

	// PluginDir contains user Lua builtins.
	PluginDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogPath is the log file. Empty disables file logging.
	LogPath string

	// AssistantName is the address prefix recognized by the
	// classifier ("aish, explain this").
	AssistantName string
}

// Default returns the built-in configuration, rooted at ~/.aish.
func Default() Config {
	dataDir := ".aish"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".aish")
	}
	return Config{
		DataDir:       dataDir,
		HistoryPath:   filepath.Join(dataDir, "history.db"),
		PluginDir:     filepath.Join(dataDir, "plugins"),
		LogLevel:      "info",
		LogPath:       filepath.Join(dataDir, "aish.log"),
		AssistantName: "aish",
	}
}

// FromEnv returns Default with any AISH_* overrides applied. Setting
// AISH_DATA_DIR re-roots the derived paths unless they are themselves
// overridden.
func FromEnv() Config {
	cfg := Default()

	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
		cfg.HistoryPath = filepath.Join(v, "history.db")
		cfg.PluginDir = filepath.Join(v, "plugins")
		cfg.LogPath = filepath.Join(v, "aish.log")
	}
	if v, ok := os.LookupEnv(EnvHistoryPath); ok && v != "" {
		cfg.HistoryPath = v
	}
	if v, ok := os.LookupEnv(EnvPluginDir); ok && v != "" {
		cfg.PluginDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogPath); ok {
		cfg.LogPath = v
	}
	if v, ok := os.LookupEnv(EnvAssistantName); ok && v != "" {
		cfg.AssistantName = v
	}
	return cfg
}

// EnsureDataDir creates the data directory tree.
func (c Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.PluginDir, 0o755)
}
