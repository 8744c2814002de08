// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists team members and spin order records on an
// explicitly passed *sql.DB. Queries use $N placeholders, which both
// lib/pq and modernc.org/sqlite accept.
package store
