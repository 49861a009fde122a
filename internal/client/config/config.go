package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the diary CLI.
//
// Fields:
//   - ServerURL: base URL of the diary REST API.
//   - DatabasePath: SQLite file holding the persisted session.
//   - RequestTimeout: per-request HTTP timeout; zero disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabasePath = "diary.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file (if any), then
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
