// Package config loads runtime configuration for the diary CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   diary API base URL
//	-d string   session database file
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The timeout uses timex.Duration, so it can be a string like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "database_path": "diary.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
