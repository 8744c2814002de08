// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the standup spinner.

# Handler Types

Each handler is a struct built from the database handle and its other
dependencies:

  - MemberHandler: Member registry (create, list, get, deactivate)
  - SpinHandler: Speaking order spins with twists
  - StatsHandler: Windowed speaking statistics
  - TwistHandler: Twist catalog

	memberHandler := handlers.NewMemberHandler(db, m)
	spinHandler := handlers.NewSpinHandler(db, twist.DefaultRand(), m)
	statsHandler := handlers.NewStatsHandler(db, cfg, m)

# Entry Points

Every operation has a JSON entry point under /api. The ones used by the
HTMX page also have an HTML entry point under /ui that returns a fragment:

	POST /api/spin → Spin      (JSON SpinResult)
	POST /ui/spin  → SpinHTML  (order card, form fields member_ids and twist_type)

JSON errors use models.ErrorResponse. HTML errors are plain text.

# Status Codes

	400  invalid body, form or days; no members selected; no valid members
	404  unknown or already inactive member
	409  active member with the same name
	500  "Database error", details only in the log

A stats window without records is not an error: /api/stats returns 200 with
no_data set and an empty stats list.
*/
package handlers
