package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded when present; variables already set in the process
// environment win over it.
var envFile = ".env"

// parseEnv overlays Config with DIARY_* environment variables.
//
//	DIARY_ADDRESS          bind address
//	DIARY_ENV              development | production
//	DIARY_SECRET_KEY       JWT secret
//	DIARY_TOKEN_VALIDITY   token lifetime, Go duration ("24h")
//	DIARY_RATE_LIMIT_RPS   auth requests per second per IP
//	DIARY_RATE_LIMIT_BURST auth burst per IP
//	DIARY_SEED_DEMO_USERS  true | false
//	DIARY_LOG_LEVEL        debug | info | warn | error
func parseEnv(cfg *Config) error {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return err
		}
	}

	setString(&cfg.Address, "DIARY_ADDRESS")
	setString(&cfg.Env, "DIARY_ENV")
	setString(&cfg.SecretKey, "DIARY_SECRET_KEY")
	setString(&cfg.LogLevel, "DIARY_LOG_LEVEL")

	if v := os.Getenv("DIARY_TOKEN_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.TokenValidityDuration = d
	}
	if v := os.Getenv("DIARY_RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		cfg.RateLimitRPS = rps
	}
	if v := os.Getenv("DIARY_RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.RateLimitBurst = burst
	}
	if v := os.Getenv("DIARY_SEED_DEMO_USERS"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.SeedDemoUsers = seed
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
