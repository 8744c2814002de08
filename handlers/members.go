// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/standup-spinner/metrics"
	"github.com/danielhkuo/standup-spinner/middleware"
	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/render"
	"github.com/danielhkuo/standup-spinner/store"
)

type MemberHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

func NewMemberHandler(db *sql.DB, m *metrics.Metrics) *MemberHandler {
	return &MemberHandler{store: store.New(db), metrics: m}
}

// ListMembers handles GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListActiveMembers(r.Context())
	if err != nil {
		slog.Error("failed to list members", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListMembersResponse{Members: members})
}

// CreateMember handles POST /api/members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	member, reactivated, status, msg := h.create(r.Context(), req)
	if status != 0 {
		middleware.ErrorResponse(w, status, msg)
		return
	}

	code := http.StatusCreated
	if reactivated {
		code = http.StatusOK
	}
	middleware.JSONResponse(w, code, member)
}

// GetMember handles GET /api/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "member_id is required")
		return
	}

	member, err := h.store.GetMember(r.Context(), memberID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		slog.Error("failed to get member", "error", err, "member_id", memberID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, member)
}

// DeactivateMember handles DELETE /api/members/{id}
func (h *MemberHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "member_id is required")
		return
	}

	err := h.store.DeactivateMember(r.Context(), memberID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		slog.Error("failed to deactivate member", "error", err, "member_id", memberID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("member deactivated", "member_id", memberID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Member deactivated"})
}

// ListMembersHTML handles GET /ui/members
func (h *MemberHandler) ListMembersHTML(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListActiveMembers(r.Context())
	if err != nil {
		slog.Error("failed to list members", "error", err)
		middleware.HTMLError(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Members(w, members); err != nil {
		slog.Error("failed to render members", "error", err)
	}
}

// CreateMemberHTML handles POST /ui/members and returns the new checkbox row
func (h *MemberHandler) CreateMemberHTML(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.HTMLError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	member, _, status, msg := h.create(r.Context(), models.CreateMemberRequest{
		Name:  r.PostForm.Get("name"),
		Emoji: r.PostForm.Get("emoji"),
	})
	if status != 0 {
		middleware.HTMLError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Member(w, member); err != nil {
		slog.Error("failed to render member", "error", err)
	}
}

// create validates and stores a member. A non-zero status is the error
// response to send.
func (h *MemberHandler) create(ctx context.Context, req models.CreateMemberRequest) (models.Member, bool, int, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Member{}, false, http.StatusBadRequest, "name is required"
	}

	member, reactivated, err := h.store.CreateMember(ctx, name, strings.TrimSpace(req.Emoji))
	if errors.Is(err, store.ErrDuplicateName) {
		return models.Member{}, false, http.StatusConflict, "Member name already exists"
	}
	if err != nil {
		slog.Error("failed to create member", "error", err)
		return models.Member{}, false, http.StatusInternalServerError, "Database error"
	}

	h.metrics.MembersCreated.Inc()
	slog.Info("member created", "member_id", member.ID, "name", member.Name, "reactivated", reactivated)

	return member, reactivated, 0, ""
}
