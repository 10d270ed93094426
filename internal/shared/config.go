package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	UI       UIConfig       `toml:"ui"`
}

// CatalogConfig contains credentials and settings for the external movie catalog.
type CatalogConfig struct {
	APIKey   string  `toml:"api_key"`
	BaseURL  string  `toml:"base_url"`
	Language string  `toml:"language"`
	RateRPS  float64 `toml:"rate_rps"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP proxy server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	LogPath string `toml:"log_path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingConfig, path, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
