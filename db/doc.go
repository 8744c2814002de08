// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the database handle lifecycle and schema creation.

# Opening

Open picks the driver from the configured database type, pings the
connection and creates the schema:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

Supported types:

  - sqlite (default): modernc.org/sqlite, pure Go
  - postgres: github.com/lib/pq

SQLite handles are limited to a single open connection.

# Tables

  - team_member: registered members, soft-deleted via is_active
  - standup_order: one row per (session, position), written by spins and
    read by stats

Safe to call CreateSchema multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Indexes

  - team_member.is_active
  - standup_order.created_at (stats window scans)
  - standup_order.session_id
  - standup_order.member_id
*/
package db
