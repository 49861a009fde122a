package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophdiary/internal/flagx"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

// JsonConfig is the JSON form of Config. Pointer fields tell an absent
// key from a zero value.
type JsonConfig struct {
	Address               string          `json:"address"`
	Env                   string          `json:"env"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	RateLimitRPS          *float64        `json:"rate_limit_rps"`
	RateLimitBurst        *int            `json:"rate_limit_burst"`
	SeedDemoUsers         *bool           `json:"seed_demo_users"`
	LogLevel              string          `json:"log_level"`
}

// parseJson overlays Config with the file named by -c/-config. Without
// either flag it does nothing.
func parseJson(cfg *Config) error {
	path := flagx.ConfigPath()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c JsonConfig
	if err := json.Unmarshal(file, &c); err != nil {
		return err
	}

	if c.Address != "" {
		cfg.Address = c.Address
	}
	if c.Env != "" {
		cfg.Env = c.Env
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RateLimitRPS != nil {
		cfg.RateLimitRPS = *c.RateLimitRPS
	}
	if c.RateLimitBurst != nil {
		cfg.RateLimitBurst = *c.RateLimitBurst
	}
	if c.SeedDemoUsers != nil {
		cfg.SeedDemoUsers = *c.SeedDemoUsers
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	return nil
}
