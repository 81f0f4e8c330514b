/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/osrkit/pkg/replay"
)

// Config represents the osrkit configuration
type Config struct {
	DataDir  string   `yaml:"data_dir" env:"DATA_DIR"`
	Port     int      `yaml:"port" env:"PORT"`
	Bind     string   `yaml:"bind" env:"BIND"`
	Codec    Codec    `yaml:"codec" envPrefix:"CODEC_"`
	Archive  Archive  `yaml:"archive" envPrefix:"ARCHIVE_"`
	Security Security `yaml:"security" envPrefix:"SECURITY_"`
	Logging  Logging  `yaml:"logging" envPrefix:"LOG_"`
}

// EnvPrefix prefixes every environment override, e.g. OSRKIT_PORT or
// OSRKIT_SECURITY_API_KEY
const EnvPrefix = "OSRKIT_"

// Codec contains replay encoding settings
type Codec struct {
	Preset int `yaml:"preset" env:"PRESET"`
}

// Archive contains replay archive settings
type Archive struct {
	// Path of the archive database; relative paths resolve against DataDir
	Path string `yaml:"path" env:"PATH"`
}

// Security contains security-related configuration
type Security struct {
	APIKey         string `yaml:"api_key" env:"API_KEY"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Codec: Codec{
			Preset: replay.DefaultPreset,
		},
		Archive: Archive{
			Path: "archive",
		},
		Security: Security{
			APIKey:         "auto",
			MaxUploadBytes: 32 << 20,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return config, nil
}

// ApplyEnv overrides settings with the OSRKIT_* environment variables that
// are set, then validates the result
func ApplyEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return c.Validate()
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Codec.Preset < 0 || c.Codec.Preset > replay.MaxPreset {
		return fmt.Errorf("codec.preset %d must be between 0 and %d", c.Codec.Preset, replay.MaxPreset)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Security.MaxUploadBytes < 0 {
		return fmt.Errorf("security.max_upload_bytes must not be negative")
	}
	return nil
}

// ArchivePath returns the archive database path resolved against DataDir
func (c *Config) ArchivePath() string {
	if c.Archive.Path == "" {
		return filepath.Join(c.DataDir, "archive")
	}
	if filepath.IsAbs(c.Archive.Path) {
		return c.Archive.Path
	}
	return filepath.Join(c.DataDir, c.Archive.Path)
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./osrkit.yaml"
	}

	// For Linux/macOS, use ~/.config/osrkit/config.yaml
	configDir := filepath.Join(homeDir, ".config", "osrkit")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
