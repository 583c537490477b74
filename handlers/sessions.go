// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/askly/cliparse"
	"github.com/danielhkuo/askly/middleware"
	"github.com/danielhkuo/askly/models"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg}
}

// Register handles POST /sessions/register
// Identity itself is external; registering a session records the
// author's display name and hands back a token for preferences and
// history lookups.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.AuthorID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_id is required")
		return
	}
	if req.AuthorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_name is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO author (id, name, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name
	`, req.AuthorID, req.AuthorName, time.Now())
	if err != nil {
		slog.Error("failed to upsert author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register session")
		return
	}

	token := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO session (id, author_id, created_at)
		VALUES ($1, $2, $3)
	`, token, req.AuthorID, time.Now())
	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register session")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register session")
		return
	}

	slog.Info("session registered", "author_id", req.AuthorID)
	middleware.JSONResponse(w, http.StatusCreated, models.RegisterSessionResponse{SessionToken: token})
}

// GetSession handles GET /sessions/{token}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session token is required")
		return
	}

	var session models.Session
	err := h.db.QueryRow(`
		SELECT s.id, s.author_id, a.name, s.created_at
		FROM session s
		JOIN author a ON a.id = s.author_id
		WHERE s.id = $1
	`, token).Scan(&session.ID, &session.AuthorID, &session.AuthorName, &session.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// GetMyQuestions handles GET /sessions/{token}/questions
func (h *SessionHandler) GetMyQuestions(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session token is required")
		return
	}

	var authorID string
	err := h.db.QueryRow("SELECT author_id FROM session WHERE id = $1", token).Scan(&authorID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, title, content, author_id, created_at
		FROM question
		WHERE author_id = $1
		ORDER BY created_at DESC, id
	`, authorID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.AuthorID, &q.CreatedAt); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}
