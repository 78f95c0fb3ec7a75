// Package config loads filescout configuration from YAML with sensible
// defaults when no file is present.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no path is given.
const DefaultConfigPath = ".filescout/config.yaml"

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Host is the listen address
	Host string `yaml:"host"`

	// Port is the listen port
	Port int `yaml:"port"`

	// AllowedOrigins is the CORS allow-list for the file-manager UI
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SearchConfig holds search execution settings.
type SearchConfig struct {
	// Timeout bounds a single search end to end on the serve path.
	// Zero disables the deadline.
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig holds search history settings.
type HistoryConfig struct {
	// Enabled turns request-metadata recording on or off
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database location
	DBPath string `yaml:"db_path"`
}

// Config represents filescout configuration options.
type Config struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	Server  ServerConfig  `yaml:"server"`
	Search  SearchConfig  `yaml:"search"`
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8380,
			AllowedOrigins: []string{"*"},
		},
		Search: SearchConfig{
			Timeout: 30 * time.Second,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".filescout/history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file returns the defaults without error; an unreadable or
// malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations arrive as strings ("30s", "2m"), so parse through an
	// intermediate shape.
	type yamlSearchConfig struct {
		Timeout string `yaml:"timeout"`
	}
	type yamlConfig struct {
		LogLevel string           `yaml:"log_level"`
		Server   ServerConfig     `yaml:"server"`
		Search   yamlSearchConfig `yaml:"search"`
		History  HistoryConfig    `yaml:"history"`
	}

	raw := yamlConfig{
		LogLevel: cfg.LogLevel,
		Server:   cfg.Server,
		History:  cfg.History,
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.LogLevel = raw.LogLevel
	cfg.Server = raw.Server
	cfg.History = raw.History
	if raw.Search.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Search.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid search timeout %q: %w", raw.Search.Timeout, err)
		}
		cfg.Search.Timeout = timeout
	}

	return cfg, nil
}
