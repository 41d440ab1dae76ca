// Package config provides configuration management for scout.
// It uses Viper for flexible configuration loading with support for:
// - Multiple formats (JSON, YAML, TOML)
// - Environment variables
// - Hot-reload
// - Default values
package config

import (
	"os"
	"path/filepath"
	"sync"

	"scout/pkg/websearch"
)

// Config represents the complete scout configuration.
type Config struct {
	Server Server          `mapstructure:"server" json:"server"`
	Logger LoggerConfig    `mapstructure:"logger" json:"logger"`
	State  StateConfig     `mapstructure:"state" json:"state"`
	Redis  RedisConfig     `mapstructure:"redis" json:"redis"`
	Search websearch.Settings `mapstructure:"search" json:"search"`
	mu     sync.RWMutex
}

// Server configures the settings HTTP API.
type Server struct {
	Enabled      bool   `mapstructure:"enabled" json:"enabled"`
	Host         string `mapstructure:"host" json:"host"`
	Port         int    `mapstructure:"port" json:"port"`
	JWTSecret    string `mapstructure:"jwt_secret" json:"jwt_secret"`
	PasswordHash string `mapstructure:"password_hash" json:"password_hash"`
}

// LoggerConfig configures structured logging.
type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level"`
	OutputPath  string `mapstructure:"output_path" json:"output_path"`
	MaxSizeMB   int    `mapstructure:"max_size_mb" json:"max_size_mb"`
	Development bool   `mapstructure:"development" json:"development"`
}

// StateConfig configures the draft-settings storage backend.
type StateConfig struct {
	Backend       string `mapstructure:"backend" json:"backend"` // "file" or "redis"
	FilePath      string `mapstructure:"file_path" json:"file_path"`
	AutoSave      bool   `mapstructure:"auto_save" json:"auto_save"`
	SaveIntervalS int    `mapstructure:"save_interval_s" json:"save_interval_s"`
	Prefix        string `mapstructure:"prefix" json:"prefix"` // redis key prefix
}

// RedisConfig configures the shared Redis connection.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" json:"addr"`
	Password string `mapstructure:"password" json:"password"`
	DB       int    `mapstructure:"db" json:"db"`
}

// DefaultConfig returns a new Config with default values. The search section
// seeds the draft snapshot on first run.
func DefaultConfig() *Config {
	return &Config{
		Server: Server{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    18420,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		State: StateConfig{
			Backend: "file",
		},
		Search: websearch.DefaultSettings(),
	}
}

// UpdateFrom copies the reloadable sections from a freshly loaded config so
// a running server picks up credential and search-default changes.
func (c *Config) UpdateFrom(next *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Server.PasswordHash = next.Server.PasswordHash
	c.Server.JWTSecret = next.Server.JWTSecret
	c.Search = next.Search
}

// DefaultStatePath returns the default draft-store file location.
func DefaultStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scout", "state.json")
}
