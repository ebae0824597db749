// Package config loads runtime configuration for the clubhub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the clubhub API
//	-t int      request timeout (seconds)
//	-s string   token storage driver: sqlite, redis or memory
//	-d string   SQLite database path
//	-r string   Redis address
//	-l string   log level
//
// # File schema
//
// Durations accept strings like "15m" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "refresh_timeout": "10s",
//	  "token_freshness": "15m",
//	  "storage_driver": "sqlite",
//	  "database_path": "clubhub.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "login_path": "/login.html",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
