// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/askly/cliparse"
	"github.com/danielhkuo/askly/middleware"
	"github.com/danielhkuo/askly/models"
)

type ThemeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewThemeHandler(db *sql.DB, cfg cliparse.Config) *ThemeHandler {
	return &ThemeHandler{db: db, cfg: cfg}
}

// GetTheme handles GET /sessions/{token}/theme
// Reads never change the mode; an unset preference defaults to light.
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session token is required")
		return
	}

	if !h.sessionExists(w, token) {
		return
	}

	mode := models.ThemeLight
	err := h.db.QueryRow(`
		SELECT mode FROM theme_preference WHERE session_id = $1
	`, token).Scan(&mode)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query theme", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ThemeResponse{Mode: mode})
}

// SetTheme handles PUT /sessions/{token}/theme
// The only way the mode changes: an explicit command from a user
// action, persisted so it survives across sessions.
func (h *ThemeHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session token is required")
		return
	}

	var req models.SetThemeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Mode != models.ThemeLight && req.Mode != models.ThemeDark {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be light or dark")
		return
	}

	if !h.sessionExists(w, token) {
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO theme_preference (session_id, mode, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET mode = excluded.mode, updated_at = excluded.updated_at
	`, token, req.Mode, time.Now())
	if err != nil {
		slog.Error("failed to set theme", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set theme")
		return
	}

	slog.Info("theme set", "session_id", token, "mode", req.Mode)
	w.WriteHeader(http.StatusNoContent)
}

// sessionExists writes the 404 itself and reports whether to continue.
// Asking for a theme outside a registered session is a configuration
// error on the caller's side, not a default-and-continue case.
func (h *ThemeHandler) sessionExists(w http.ResponseWriter, token string) bool {
	var one int
	err := h.db.QueryRow("SELECT 1 FROM session WHERE id = $1", token).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return false
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	return true
}
