package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
//	-a string   diary API base URL
//	-d string   session database file
//	-t int      request timeout (seconds)
//	-l string   log level
//
// Only these flags are looked at; anything else in os.Args is ignored.
func parseFlags(cfg *Config) error {
	fs, args := flagx.NewFlagSet("cli", "-a", "-d", "-t", "-l")

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "diary API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only an explicit -t replaces the timeout.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
