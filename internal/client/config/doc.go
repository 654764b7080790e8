// Package config loads runtime configuration for the ozo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading an optional .env file:
//     OZO_API_URL, OZO_STORE_DRIVER, OZO_STORE_PATH, OZO_REDIS_ADDR,
//     OZO_LOG_LEVEL, OZO_LOG_FORMAT, OZO_REQUEST_TIMEOUT.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the identity API
//	-i int      online status check interval (seconds)
//	-s string   credential store driver
//	-d string   credential store path
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000/api/v1",
//	  "online_check_interval": "3s",
//	  "request_timeout": "30s",
//	  "store_driver": "sqlite",
//	  "store_path": "/home/me/.config/ozo/session.db",
//	  "redis_addr": "localhost:6379",
//	  "redis_prefix": "ozo:credentials:",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The base URL is resolved once here and handed to the gateway; it is never
// re-read per request.
package config
