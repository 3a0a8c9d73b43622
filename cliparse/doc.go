// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with process-level settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: file, sql, redis or memory (default: file)
  - DataDir: Directory of the file store (default: ./data)
  - DatabaseURL / DatabaseType: SQL store connection (sqlite or postgres)
  - RedisURL: Redis store connection
  - TokenSecret: HMAC secret for bearer tokens (required)
  - Timezone: Zone used for draw dates (default: Local)
  - SettingsFile: Optional yaml file with tunables

# CLI Flags

	-p             Server port
	-s             Store type
	-data          File store directory
	-d             Database URL
	-t             Database type
	-redis         Redis URL
	-tz            Time zone
	-settings      Settings file
	-token-secret  Token signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	STORE_TYPE    → -s
	DATA_DIR      → -data
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	REDIS_URL     → -redis
	APP_TIMEZONE  → -tz
	SETTINGS_FILE → -settings
	TOKEN_SECRET  → -token-secret

CLI flags take precedence over environment variables.

# Tokens

ParseTokenFlags parses the arguments of the token subcommand:

	lotto-hub token -uid alice -role seller -ttl 12h

# Settings

Retention horizons, Redis client tuning and the circuit breaker live in a
viper-managed settings file. Every key can be overridden with a LOTTOHUB_
environment variable, and SettingsManager.Watch reloads the file when it
changes:

	retention:
	  sales: 12h
	  winners: 24h
	  results: 168h
	  sweep_interval: 10m
	redis:
	  retry_attempts: 3
	circuit_breaker:
	  enabled: true
*/
package cliparse
