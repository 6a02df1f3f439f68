// ABOUTME: Wayzza configuration management with path expansion.
// ABOUTME: Handles data directory overrides and storage factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JWicher/wayzza/internal/storage"
)

// Config stores wayzza tool configuration.
type Config struct {
	// DataDir is the root directory for data storage. SQLite puts
	// wayzza.db here and the handoff slot lives in handoff/.
	// Supports ~ expansion. Defaults to ~/.local/share/wayzza.
	DataDir string `json:"data_dir,omitempty"`

	// Provider selects the default positioning provider for the
	// track command when no flag is given: "simulate" or "replay".
	Provider string `json:"provider,omitempty"`

	// ReplayFile is the default coordinates fixture for the replay
	// provider.
	ReplayFile string `json:"replay_file,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetProvider returns the configured provider, defaulting to "simulate".
func (c *Config) GetProvider() string {
	if c.Provider == "" {
		return "simulate"
	}
	return c.Provider
}

// HandoffDir returns the badger directory for the cross-process
// handoff slot.
func (c *Config) HandoffDir() string {
	return filepath.Join(c.GetDataDir(), "handoff")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store under the configured data dir.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "wayzza.db"))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "wayzza", "config.json")
}

// Load reads the config file, returning an empty config if none exists.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
