// Package config loads the YAML configuration the cryptanalyst CLI and
// engine consult for defaults: which language to assume, how long a
// run is allowed to take, and whether dictionary validation is on.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config mirrors the engine's Options plus the logging knobs the CLI
// needs, so a user's ~/.cryptanalyst/config.yaml can set process-wide
// defaults that CLI flags then override.
type Config struct {
	// Engine defaults (spec §6 Options).
	Engine struct {
		Language      string `yaml:"language"`
		TryMultiple   bool   `yaml:"tryMultiple"`
		MaxTimeMS     int64  `yaml:"maxTimeMs"`
		UseDictionary bool   `yaml:"useDictionary"`
	} `yaml:"engine"`

	// General settings.
	General struct {
		LogLevel string `yaml:"logLevel"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"general"`
}

// LoadConfig loads the configuration from the specified file, creating
// a default one on first run when configPath resolves to a path that
// does not exist yet.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".cryptanalyst", "config.yaml")
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := createDefaultConfig()
		if err := SaveConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes the configuration to the specified file.
func SaveConfig(configPath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// createDefaultConfig matches spec §6's engine defaults.
func createDefaultConfig() *Config {
	cfg := &Config{}

	cfg.Engine.Language = "auto"
	cfg.Engine.TryMultiple = true
	cfg.Engine.MaxTimeMS = 60000
	cfg.Engine.UseDictionary = true

	cfg.General.LogLevel = "info"
	cfg.General.Debug = false

	return cfg
}
