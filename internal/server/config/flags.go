package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-r float    auth requests per second per IP
//	-b int      auth burst per IP
//	-l string   log level
//	-seed bool  create the demo accounts
func parseFlags(cfg *Config) error {
	fs, args := flagx.NewFlagSet("server", "-a", "-s", "-t", "-r", "-b", "-l", "-seed")

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.Float64Var(&cfg.RateLimitRPS, "r", cfg.RateLimitRPS, "auth requests per second per IP")
	fs.IntVar(&cfg.RateLimitBurst, "b", cfg.RateLimitBurst, "auth burst per IP")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.SeedDemoUsers, "seed", cfg.SeedDemoUsers, "create demo accounts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenValidityDuration = time.Duration(*validity) * time.Minute
		}
	})
	return nil
}
