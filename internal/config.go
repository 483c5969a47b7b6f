package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the per-user directory holding config and data
	ConfigDirName = ".blueprint"
	// ConfigFileName is the config file inside ConfigDirName
	ConfigFileName = "config.yaml"
)

// Config holds user configuration
type Config struct {
	// DataDir holds the key-value store
	DataDir string `yaml:"data_dir,omitempty"`

	// Storage selects the KVStore backend
	Storage StorageBackend `yaml:"storage,omitempty"`

	// Language is the display language used when none was saved
	Language string `yaml:"language,omitempty"`

	History HistoryConfig `yaml:"history,omitempty"`
}

// HistoryConfig holds history settings
type HistoryConfig struct {
	MaxItems int `yaml:"max_items,omitempty"`
}

// DefaultDataDir returns ~/.blueprint, or a relative .blueprint when the
// home directory is unknown
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ConfigDirName
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultConfigPath returns the config file location
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), ConfigFileName)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Storage: BackendSQLite,
		History: HistoryConfig{MaxItems: DefaultMaxHistoryItems},
	}
}

// LoadConfig reads the config at path, or the default path when empty.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			LogDebug("No config at %s, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.History.MaxItems == 0 {
		cfg.History.MaxItems = DefaultMaxHistoryItems
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating its directory
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks field values
func (c *Config) Validate() error {
	switch c.Storage {
	case BackendSQLite, BackendYAML, BackendMemory, "":
	default:
		return fmt.Errorf("unsupported storage backend: %s (supported: sqlite, yaml, memory)", c.Storage)
	}
	if c.History.MaxItems < 0 {
		return fmt.Errorf("history.max_items must not be negative, got %d", c.History.MaxItems)
	}
	return nil
}
