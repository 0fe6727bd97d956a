// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: sqlite file path (default: isoloir.db) or PostgreSQL connection string
  - SessionKeySalt: Secret for admin and elector session keys (required)
  - AdminUsername, AdminPassword: bootstrap administrator (optional, set together)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-env             Dotenv file (default: .env, ignored when missing)
	--session-salt   Session key salt
	--admin-user     Bootstrap admin username
	--admin-password Bootstrap admin password

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SESSION_KEY_SALT → --session-salt
	ADMIN_USERNAME   → --admin-user
	ADMIN_PASSWORD   → --admin-password

CLI flags take precedence over environment variables, which take precedence
over the dotenv file.
*/
package cliparse
