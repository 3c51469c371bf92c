// Package config provides configuration management for keybit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aki/keybit/internal/core/keyway"
)

const (
	// HomeEnv overrides the keybit home directory
	HomeEnv = "KEYBIT_HOME"
	// HomeDir is the directory name for keybit data under the user's home
	HomeDir = ".keybit"
	// ConfigFile is the filename of the keybit configuration
	ConfigFile = "config.yaml"
)

// ResolveHome picks the keybit home: the explicit value, then $KEYBIT_HOME,
// then ~/.keybit
func ResolveHome(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return filepath.Abs(explicit)
	}
	if env := strings.TrimSpace(os.Getenv(HomeEnv)); env != "" {
		return filepath.Abs(env)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory (set %s): %w", HomeEnv, err)
	}
	return filepath.Join(userHome, HomeDir), nil
}

// Manager handles the keybit configuration file
type Manager struct {
	home       string
	configPath string
}

// NewManager creates a configuration manager for a keybit home
func NewManager(home string) *Manager {
	return &Manager{
		home:       home,
		configPath: filepath.Join(home, ConfigFile),
	}
}

// Load reads the configuration. A missing file yields DefaultConfig.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.configPath, err)
	}
	return cfg, nil
}

// Parse validates and decodes a configuration document
func Parse(data []byte) (*Config, error) {
	if err := ValidateYAML(data); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Save validates and writes the configuration
func (m *Manager) Save(cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := os.MkdirAll(m.home, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// IsInitialized reports whether a configuration file exists
func (m *Manager) IsInitialized() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// Home returns the keybit home directory
func (m *Manager) Home() string {
	return m.home
}

// ConfigPath returns the configuration file path
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// CatalogPath returns the absolute path of the configured catalog, or ""
func (m *Manager) CatalogPath(cfg *Config) string {
	if cfg == nil || cfg.Catalog == "" {
		return ""
	}
	if filepath.IsAbs(cfg.Catalog) {
		return cfg.Catalog
	}
	return filepath.Join(m.home, cfg.Catalog)
}

// Table returns the built-in keyway table merged with the configured catalog
func (m *Manager) Table(cfg *Config) (*keyway.Table, error) {
	path := m.CatalogPath(cfg)
	if path == "" {
		return keyway.Builtin(), nil
	}
	extra, err := keyway.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return keyway.Builtin().Merge(extra), nil
}
