// Package config loads runtime configuration for the examhub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-d string   local SQLite database path
//	-s string   session store secret
//	-l string   log level
//	-dev        development mode
//
// # JSON schema
//
//	{
//	  "base_url": "http://127.0.0.1:3000/api/v1",
//	  "request_timeout": "10s",
//	  "dev_mode": false,
//	  "database_path": "~/.examhub/examhub.db",
//	  "store_secret": "change-me",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
