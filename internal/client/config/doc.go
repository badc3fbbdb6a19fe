// Package config loads runtime configuration for the alumnet terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the alumni network API
//	-t int      request timeout (seconds)
//	-s string   path of the local SQLite state file
//	-l string   log level (debug, info, warn, error)
//	-i int      reachability check interval (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "request_timeout": "10s",
//	  "storage_path": "alumnet.db",
//	  "log_level": "info",
//	  "ping_interval": "15s"
//	}
package config
