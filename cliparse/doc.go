// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8088)
  - DatabaseType: memory, sqlite or postgres (default: memory)
  - DatabaseURL: SQLite file or PostgreSQL connection string
  - Env: Logging environment, local, dev or prod (default: local)
  - StrictVotes: Reject votes for options the poll does not declare

# CLI Flags

	-p       Server port
	-t       Storage backend
	-d       Database URL
	-env     Logging environment
	-strict  Reject undeclared vote options

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	APP_ENV       → -env
	STRICT_VOTES  → -strict

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first; it never overrides variables that
are already set:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		// malformed file
	}

# Validation

ParseFlags returns an error if:

  - PORT is not a number or the port is outside 1-65535
  - DATABASE_TYPE is not one of the three backends
  - DATABASE_URL is missing for sqlite or postgres
  - STRICT_VOTES is not a boolean
*/
package cliparse
