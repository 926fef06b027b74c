// Package config loads runtime configuration for the LMS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. Environment: ./.env (via godotenv) and LMS_* variables.
//  4. Command-line flags (see (*Config).BindFlags), which override earlier values.
//
// # JSON schema
//
// Durations are timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:5000/api",
//	  "request_timeout": "30s",
//	  "storage": "s3",
//	  "s3_bucket": "lms-uploads",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "bulk_delay": "300ms"
//	}
package config
