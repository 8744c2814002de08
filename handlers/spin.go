// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/standup-spinner/ident"
	"github.com/danielhkuo/standup-spinner/metrics"
	"github.com/danielhkuo/standup-spinner/middleware"
	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/render"
	"github.com/danielhkuo/standup-spinner/spin"
	"github.com/danielhkuo/standup-spinner/store"
	"github.com/danielhkuo/standup-spinner/twist"
)

type SpinHandler struct {
	service *spin.Service
	metrics *metrics.Metrics
}

func NewSpinHandler(db *sql.DB, rng twist.Rand, m *metrics.Metrics) *SpinHandler {
	return &SpinHandler{
		service: spin.NewService(store.New(db), rng, ident.UUIDGenerator{}),
		metrics: m,
	}
}

// Spin handles POST /api/spin
func (h *SpinHandler) Spin(w http.ResponseWriter, r *http.Request) {
	var req models.SpinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, status, msg := h.spin(r.Context(), req)
	if status != 0 {
		middleware.ErrorResponse(w, status, msg)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// SpinHTML handles POST /ui/spin with repeated member_ids form fields
func (h *SpinHandler) SpinHTML(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.HTMLError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	result, status, msg := h.spin(r.Context(), models.SpinRequest{
		MemberIDs: r.PostForm["member_ids"],
		TwistType: r.PostForm.Get("twist_type"),
	})
	if status != 0 {
		middleware.HTMLError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Spin(w, result); err != nil {
		slog.Error("failed to render spin", "error", err)
	}
}

func (h *SpinHandler) spin(ctx context.Context, req models.SpinRequest) (*models.SpinResult, int, string) {
	twistType := req.TwistType
	if twistType == "" {
		twistType = twist.Random
	}

	result, err := h.service.Spin(ctx, req.MemberIDs, twistType)
	switch {
	case errors.Is(err, spin.ErrNoMembersSelected):
		return nil, http.StatusBadRequest, "No members selected"
	case errors.Is(err, spin.ErrNoValidMembers):
		return nil, http.StatusBadRequest, "No valid members found"
	case errors.Is(err, spin.ErrTooManyMembers):
		return nil, http.StatusBadRequest, "Too many members selected"
	case err != nil:
		slog.Error("failed to spin", "error", err)
		return nil, http.StatusInternalServerError, "Database error"
	}

	h.metrics.ObserveSpin(result.TwistType, result.TwistApplied, len(result.Order))
	slog.Info("spin recorded",
		"session_id", result.SessionID,
		"twist", result.TwistType,
		"positions", len(result.Order),
	)

	return result, 0, ""
}

type TwistHandler struct{}

func NewTwistHandler() *TwistHandler {
	return &TwistHandler{}
}

// ListTwists handles GET /api/twists
func (h *TwistHandler) ListTwists(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.TwistsResponse{Twists: twist.Catalog()})
}
