// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/standup-spinner/cliparse"
	"github.com/danielhkuo/standup-spinner/metrics"
	"github.com/danielhkuo/standup-spinner/middleware"
	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/render"
	"github.com/danielhkuo/standup-spinner/stats"
	"github.com/danielhkuo/standup-spinner/store"
)

const noDataMessage = "No standup data available yet."

type StatsHandler struct {
	service *stats.Service
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewStatsHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *StatsHandler {
	return &StatsHandler{
		service: stats.NewService(store.New(db)),
		cfg:     cfg,
		metrics: m,
	}
}

// GetStats handles GET /api/stats?days=N
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	days, ok := h.parseDays(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "days must be a whole number between 1 and "+strconv.Itoa(stats.MaxDays))
		return
	}

	report, err := h.service.Compute(r.Context(), days)
	if errors.Is(err, stats.ErrNoData) {
		h.metrics.StatsQueries.WithLabelValues("no_data").Inc()
		middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
			Days:    report.Days,
			Since:   report.Since,
			NoData:  true,
			Message: noDataMessage,
			Stats:   []models.MemberStats{},
		})
		return
	}
	if err != nil {
		slog.Error("failed to compute stats", "error", err, "days", days)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.metrics.StatsQueries.WithLabelValues("data").Inc()
	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Days:  report.Days,
		Since: report.Since,
		Stats: report.Stats,
	})
}

// GetStatsHTML handles GET /ui/stats?days=N
func (h *StatsHandler) GetStatsHTML(w http.ResponseWriter, r *http.Request) {
	days, ok := h.parseDays(r)
	if !ok {
		middleware.HTMLError(w, http.StatusBadRequest, "Invalid days")
		return
	}

	report, err := h.service.Compute(r.Context(), days)
	if err != nil && !errors.Is(err, stats.ErrNoData) {
		slog.Error("failed to compute stats", "error", err, "days", days)
		middleware.HTMLError(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errors.Is(err, stats.ErrNoData) {
		h.metrics.StatsQueries.WithLabelValues("no_data").Inc()
		err = render.NoData(w)
	} else {
		h.metrics.StatsQueries.WithLabelValues("data").Inc()
		err = render.Stats(w, report.Days, report.Since, report.Stats)
	}
	if err != nil {
		slog.Error("failed to render stats", "error", err)
	}
}

// parseDays reads the days query parameter, defaulting to the configured window
func (h *StatsHandler) parseDays(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return h.cfg.StatsDays, true
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > stats.MaxDays {
		return 0, false
	}
	return days, true
}
