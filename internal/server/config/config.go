// Package config handles configuration for the stand-in diary API,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const devSecretKey = "dev-secret-change-in-production"

var ErrDefaultSecret = errors.New("secret key must be changed in production")

// Config holds runtime settings for the stand-in API.
//
// Fields:
//   - Address: HTTP bind address.
//   - Env: "development" or "production".
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: lifetime of issued bearer tokens.
//   - RateLimitRPS / RateLimitBurst: per-IP limit on the auth endpoints.
//   - SeedDemoUsers: create admin/admin and user/user at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Address               string
	Env                   string
	SecretKey             string
	TokenValidityDuration time.Duration
	RateLimitRPS          float64
	RateLimitBurst        int
	SeedDemoUsers         bool
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.Env = "development"
	c.SecretKey = devSecretKey
	c.TokenValidityDuration = 24 * time.Hour
	c.RateLimitRPS = 5
	c.RateLimitBurst = 10
	c.SeedDemoUsers = true
	c.LogLevel = "info"
}

// Validate rejects settings that are unsafe or meaningless.
func (c *Config) Validate() error {
	if c.Env == "production" && c.SecretKey == devSecretKey {
		return ErrDefaultSecret
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v/%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the environment
// (with .env loaded when present), then an optional JSON file and finally
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
