// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to the subset shared by PostgreSQL and SQLite.
// member_id carries no foreign key: pair entries use synthetic ids.
const schema = `
-- Team members (soft-deleted via is_active)
CREATE TABLE IF NOT EXISTS team_member (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    emoji TEXT NOT NULL DEFAULT '👤',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_team_member_active ON team_member(is_active);

-- One row per position of each spin
CREATE TABLE IF NOT EXISTS standup_order (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    position INTEGER NOT NULL CHECK (position >= 1),
    twist_type TEXT NOT NULL DEFAULT 'none',
    created_at TIMESTAMP NOT NULL,
    UNIQUE (session_id, position)
);

CREATE INDEX IF NOT EXISTS idx_standup_order_created_at ON standup_order(created_at);
CREATE INDEX IF NOT EXISTS idx_standup_order_session_id ON standup_order(session_id);
CREATE INDEX IF NOT EXISTS idx_standup_order_member_id ON standup_order(member_id);
`
