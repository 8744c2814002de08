// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the standup spinner server.

The standup spinner picks the speaking order for a team's daily standup.
A spin shuffles the present members, optionally applies a twist (reverse
alphabetical, skip one, double turn, pair up) and records the order so
that speaking statistics can be computed later.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Settings come from defaults, a .env file (-env, default ".env"), the
environment and flags, each overriding the previous:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default for sqlite: file:standup.db)
  - STATS_DAYS (-days): Default stats window (default: 30)
  - ALLOWED_ORIGINS (-origins): Comma-separated CORS origins (default: *)
  - LOG_FORMAT (-log): text or json (default: text)

# Architecture

  - twist: Twist engine over an injectable random source
  - spin: Spin recorder (resolve members, apply twist, persist a session)
  - stats: Stats aggregator over recorded sessions
  - store: SQL persistence for members and order records
  - handlers: HTTP request handlers, JSON under /api and HTML under /ui
  - render: Embedded HTML templates for HTMX fragments
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - metrics: Prometheus collectors
  - ident: Session and member identifiers
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
