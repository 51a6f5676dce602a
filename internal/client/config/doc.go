// Package config loads runtime configuration for the recipes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables prefixed RECIPES_.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   path of the local sqlite database
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080/api/v1",
//	  "db_path": "recipes.db",
//	  "request_timeout": "10s",
//	  "session_ttl": "72h",
//	  "page_size": 10,
//	  "collection_load_floor": "1s",
//	  "profile_load_floor": "300ms",
//	  "alert_delay": "400ms",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1"
//	}
//
// S3 credentials are read from the environment only.
package config
