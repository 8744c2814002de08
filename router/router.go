// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/standup-spinner/cliparse"
	"github.com/danielhkuo/standup-spinner/handlers"
	"github.com/danielhkuo/standup-spinner/metrics"
	"github.com/danielhkuo/standup-spinner/middleware"
	"github.com/danielhkuo/standup-spinner/twist"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	memberHandler := handlers.NewMemberHandler(db, m)
	spinHandler := handlers.NewSpinHandler(db, twist.DefaultRand(), m)
	statsHandler := handlers.NewStatsHandler(db, cfg, m)
	twistHandler := handlers.NewTwistHandler()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", m.Handler())

	// Member registry
	mux.HandleFunc("GET /api/members", middleware.WithLogging(memberHandler.ListMembers))
	mux.HandleFunc("POST /api/members", middleware.WithLogging(memberHandler.CreateMember))
	mux.HandleFunc("GET /api/members/{id}", middleware.WithLogging(memberHandler.GetMember))
	mux.HandleFunc("DELETE /api/members/{id}", middleware.WithLogging(memberHandler.DeactivateMember))

	// Spins, stats and twists
	mux.HandleFunc("POST /api/spin", middleware.WithLogging(spinHandler.Spin))
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("GET /api/twists", middleware.WithLogging(twistHandler.ListTwists))

	// HTMX fragments
	mux.HandleFunc("GET /ui/members", middleware.WithLogging(memberHandler.ListMembersHTML))
	mux.HandleFunc("POST /ui/members", middleware.WithLogging(memberHandler.CreateMemberHTML))
	mux.HandleFunc("POST /ui/spin", middleware.WithLogging(spinHandler.SpinHTML))
	mux.HandleFunc("GET /ui/stats", middleware.WithLogging(statsHandler.GetStatsHTML))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("standup-spinner API v1"))
	})

	return middleware.WithMetrics(m, middleware.CORS(cfg.AllowedOrigins, mux))
}
