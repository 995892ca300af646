// Package config loads runtime configuration for the scheduling CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3333/v1",
//	  "request_timeout": "10s",
//	  "refresh_threshold": "5m",
//	  "access_token_ttl": "24h",
//	  "refresh_token_ttl": "360h",
//	  "refresh_queue_capacity": 64,
//	  "session_db": "session.db",
//	  "timezone": "America/Sao_Paulo",
//	  "hour_start": 6,
//	  "hour_end": 22,
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
