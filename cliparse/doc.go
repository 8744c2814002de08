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
  - DatabaseURL: connection string (default for sqlite: file:standup.db)
  - StatsDays: default stats window (default: 30)
  - AllowedOrigins: CORS origins (default: *)
  - LogFormat: text (default) or json

# Sources

Lowest to highest precedence:

  1. defaults (envDefault tags)
  2. the .env file (-env, default ".env"; a missing file is ignored)
  3. the process environment
  4. CLI flags given on the command line

# CLI Flags

	-env      .env file path
	-p        Server port             (PORT)
	-d        Database URL            (DATABASE_URL)
	-t        Database type           (DATABASE_TYPE)
	-days     Stats window in days    (STATS_DAYS)
	-origins  Allowed CORS origins    (ALLOWED_ORIGINS, comma-separated)
	-log      Log format              (LOG_FORMAT)

# Validation

ParseFlags returns an error when:

  - postgres is selected without a database URL
  - the database type or log format is unknown
  - the port or stats window is out of range
*/
package cliparse
