// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the standup spinner.

# Route Registration

NewRouter builds an http.ServeMux with all endpoints and wraps it with CORS
and request metrics:

	handler := router.NewRouter(db, cfg, metrics.New())

# Endpoints

Health and metrics:

	GET /health  - Liveness, returns "OK"
	GET /metrics - Prometheus exposition
	GET /        - Banner

Member registry (JSON):

	GET    /api/members      - Active members
	POST   /api/members      - Register or reactivate a member
	GET    /api/members/{id} - Member details
	DELETE /api/members/{id} - Deactivate a member

Spins and stats (JSON):

	POST /api/spin        - Compute and record a speaking order
	GET  /api/stats?days= - Speaking statistics for the window
	GET  /api/twists      - Twist catalog

HTMX fragments (HTML):

	GET  /ui/members      - Member checkboxes
	POST /ui/members      - Register from form, returns one checkbox
	POST /ui/spin         - Spin from form, returns the order card
	GET  /ui/stats?days=  - Stat cards or the no-data notice

# Handler Initialization

The router creates handler instances with dependency injection:

	memberHandler := handlers.NewMemberHandler(db, m)
	spinHandler := handlers.NewSpinHandler(db, twist.DefaultRand(), m)
	statsHandler := handlers.NewStatsHandler(db, cfg, m)
*/
package router
