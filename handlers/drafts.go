// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/askly/auth"
	"github.com/danielhkuo/askly/cliparse"
	"github.com/danielhkuo/askly/middleware"
	"github.com/danielhkuo/askly/models"
	"github.com/danielhkuo/askly/richtext"
)

// QuestionStore is the persistence operation a submit invokes. The
// DB-backed implementation is the default; tests substitute failing
// stores to exercise the error path.
type QuestionStore interface {
	Create(sub models.QuestionSubmission) (questionID string, err error)
	Update(questionID string, sub models.QuestionSubmission) error
}

type DraftHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store QuestionStore
}

func NewDraftHandler(db *sql.DB, cfg cliparse.Config) *DraftHandler {
	return &DraftHandler{db: db, cfg: cfg, store: &dbQuestionStore{db: db}}
}

// NewDraftHandlerWithStore injects a custom persistence operation.
func NewDraftHandlerWithStore(db *sql.DB, cfg cliparse.Config, store QuestionStore) *DraftHandler {
	return &DraftHandler{db: db, cfg: cfg, store: store}
}

// CreateDraft handles POST /drafts
// The form-mount operation: an empty draft in ask mode, or a draft
// seeded from an existing question in edit mode.
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.AuthorID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_id is required")
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeAsk
	}
	if req.Mode != models.ModeAsk && req.Mode != models.ModeEdit {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be ask or edit")
		return
	}

	draftID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate draft ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	if req.Mode == models.ModeAsk {
		_, err = h.db.Exec(`
			INSERT INTO draft (id, author_id, mode, status, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, draftID, req.AuthorID, models.ModeAsk, models.StatusIdle, time.Now())
		if err != nil {
			slog.Error("failed to insert draft", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
			return
		}

		slog.Info("draft created", "draft_id", draftID, "author_id", req.AuthorID)
		middleware.JSONResponse(w, http.StatusCreated, models.CreateDraftResponse{DraftID: draftID})
		return
	}

	// Edit mode: owner-only, seeded from the existing question
	if req.QuestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required in edit mode")
		return
	}

	authorKey := r.Header.Get("X-Author-Key")
	if err := auth.ValidateAuthorKey(req.QuestionID, req.AuthorID, authorKey, h.cfg.AuthorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid author key")
		return
	}

	var title, content string
	err = h.db.QueryRow(`
		SELECT title, content FROM question WHERE id = $1 AND author_id = $2
	`, req.QuestionID, req.AuthorID).Scan(&title, &content)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
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
		INSERT INTO draft (id, author_id, mode, question_id, title, explanation, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, draftID, req.AuthorID, models.ModeEdit, req.QuestionID, title, content, models.StatusIdle, time.Now())
	if err != nil {
		slog.Error("failed to insert draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	// Seed the draft's tag sequence from the question's current tags
	_, err = tx.Exec(`
		INSERT INTO draft_tag (draft_id, name, position)
		SELECT $1, t.name, qt.position
		FROM question_tag qt
		JOIN tag t ON t.id = qt.tag_id
		WHERE qt.question_id = $2
	`, draftID, req.QuestionID)
	if err != nil {
		slog.Error("failed to seed draft tags", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	slog.Info("edit draft created", "draft_id", draftID, "question_id", req.QuestionID)
	middleware.JSONResponse(w, http.StatusCreated, models.CreateDraftResponse{DraftID: draftID})
}

// GetDraft handles GET /drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("id")
	if draftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	draft, err := h.loadDraft(draftID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}
	if err != nil {
		slog.Error("failed to load draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, draft)
}

// UpdateDraft handles PUT /drafts/{id}
// Field updates as the user types; only the provided fields change.
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("id")
	if draftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	var req models.UpdateDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	draft, err := h.loadDraft(draftID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}
	if err != nil {
		slog.Error("failed to load draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	title := draft.Title
	if req.Title != nil {
		title = *req.Title
	}
	explanation := draft.Explanation
	if req.Explanation != nil {
		explanation = *req.Explanation
	}

	_, err = h.db.Exec(`
		UPDATE draft SET title = $1, explanation = $2 WHERE id = $3
	`, title, explanation, draftID)
	if err != nil {
		slog.Error("failed to update draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update draft")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTag handles POST /drafts/{id}/tags
// The tag editor's commit-key path: trim, validate, dedup, cap, append.
func (h *DraftHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("id")
	if draftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	var req models.AddTagRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tags, err := h.loadDraftTags(draftID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}
	if err != nil {
		slog.Error("failed to load draft tags", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	next, ferr := AddTag(tags, req.Tag)
	if ferr != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, ferr.Message)
		return
	}

	if len(next) == len(tags) {
		// Duplicate: sequence unchanged, input cleared client-side
		middleware.JSONResponse(w, http.StatusOK, models.AddTagResponse{Tags: next})
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO draft_tag (draft_id, name, position)
		VALUES ($1, $2, $3)
	`, draftID, next[len(next)-1], len(next)-1)
	if err != nil {
		slog.Error("failed to insert draft tag", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add tag")
		return
	}

	slog.Info("tag added", "draft_id", draftID, "tag", next[len(next)-1])
	middleware.JSONResponse(w, http.StatusCreated, models.AddTagResponse{Tags: next})
}

// RemoveTag handles DELETE /drafts/{id}/tags/{tag}
// Not permitted in edit mode; the remove affordance only exists when
// asking a new question.
func (h *DraftHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("id")
	tag := r.PathValue("tag")
	if draftID == "" || tag == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "draft_id and tag are required")
		return
	}

	var mode string
	err := h.db.QueryRow("SELECT mode FROM draft WHERE id = $1", draftID).Scan(&mode)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}
	if err != nil {
		slog.Error("failed to query draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if mode == models.ModeEdit {
		middleware.ErrorResponse(w, http.StatusConflict, "Tags cannot be removed while editing")
		return
	}

	tags, err := h.loadDraftTags(draftID)
	if err != nil {
		slog.Error("failed to load draft tags", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	next := RemoveTag(tags, tag)
	if len(next) == len(tags) {
		// Absent tag: nothing to do
		middleware.JSONResponse(w, http.StatusOK, models.AddTagResponse{Tags: next})
		return
	}

	if err := h.replaceDraftTags(draftID, next); err != nil {
		slog.Error("failed to remove draft tag", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove tag")
		return
	}

	slog.Info("tag removed", "draft_id", draftID, "tag", tag)
	middleware.JSONResponse(w, http.StatusOK, models.AddTagResponse{Tags: next})
}

// SubmitDraft handles POST /drafts/{id}/submit
// Validates the draft, then runs the persistence call under the
// submitting flag so a second submit cannot start while one is in
// flight. Persistence failures are logged and swallowed: the client
// sees a generic 502 and the draft returns to idle.
func (h *DraftHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("id")
	if draftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	var req models.SubmitDraftRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}
	if req.Path == "" {
		req.Path = "/ask-question"
	}

	draft, err := h.loadDraft(draftID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}
	if err != nil {
		slog.Error("failed to load draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Rich text is sanitized before validation and storage; length
	// rules measure the prose that survives.
	content := richtext.Sanitize(draft.Explanation)
	if errs := ValidateDraft(draft.Title, richtext.PlainText(content), draft.Tags); len(errs) > 0 {
		middleware.FieldErrorResponse(w, errs)
		return
	}

	// Mutual exclusion: only an idle draft may enter submitting.
	res, err := h.db.Exec(`
		UPDATE draft SET status = $1 WHERE id = $2 AND status = $3
	`, models.StatusSubmitting, draftID, models.StatusIdle)
	if err != nil {
		slog.Error("failed to mark draft submitting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Submit already in progress")
		return
	}

	sub := models.QuestionSubmission{
		Title:    draft.Title,
		Content:  content,
		Tags:     draft.Tags,
		AuthorID: draft.AuthorID,
		Path:     req.Path,
	}

	var questionID string
	if draft.Mode == models.ModeEdit {
		questionID = *draft.QuestionID
		err = h.store.Update(questionID, sub)
	} else {
		questionID, err = h.store.Create(sub)
	}

	if err != nil {
		// Swallowed after logging: the client learns nothing beyond
		// the submit becoming available again.
		slog.Error("persistence call failed", "error", err, "draft_id", draftID, "path", req.Path)
		if _, rerr := h.db.Exec(`UPDATE draft SET status = $1 WHERE id = $2`, models.StatusIdle, draftID); rerr != nil {
			slog.Error("failed to reset draft status", "error", rerr, "draft_id", draftID)
		}
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to submit question")
		return
	}

	// Draft is discarded on successful submit
	if _, err := h.db.Exec(`DELETE FROM draft WHERE id = $1`, draftID); err != nil {
		slog.Error("failed to delete submitted draft", "error", err, "draft_id", draftID)
	}

	slog.Info("question submitted", "draft_id", draftID, "question_id", questionID, "mode", draft.Mode)

	resp := models.SubmitDraftResponse{
		QuestionID: questionID,
		Redirect:   "/",
	}
	if draft.Mode == models.ModeAsk {
		resp.AuthorKey = auth.GenerateAuthorKey(questionID, draft.AuthorID, h.cfg.AuthorKeySalt)
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// loadDraft fetches a draft row with its ordered tag sequence.
func (h *DraftHandler) loadDraft(draftID string) (models.Draft, error) {
	var draft models.Draft
	err := h.db.QueryRow(`
		SELECT id, author_id, mode, question_id, title, explanation, status, created_at
		FROM draft
		WHERE id = $1
	`, draftID).Scan(
		&draft.ID, &draft.AuthorID, &draft.Mode, &draft.QuestionID,
		&draft.Title, &draft.Explanation, &draft.Status, &draft.CreatedAt,
	)
	if err != nil {
		return models.Draft{}, err
	}

	tags, err := h.loadDraftTags(draftID)
	if err != nil {
		return models.Draft{}, err
	}
	draft.Tags = tags
	return draft, nil
}

// loadDraftTags returns the ordered tag sequence for a draft, or
// sql.ErrNoRows when the draft itself does not exist.
func (h *DraftHandler) loadDraftTags(draftID string) ([]string, error) {
	var exists int
	if err := h.db.QueryRow("SELECT 1 FROM draft WHERE id = $1", draftID).Scan(&exists); err != nil {
		return nil, err
	}

	rows, err := h.db.Query(`
		SELECT name FROM draft_tag WHERE draft_id = $1 ORDER BY position
	`, draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// replaceDraftTags rewrites the tag sequence with compacted positions.
func (h *DraftHandler) replaceDraftTags(draftID string, tags []string) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM draft_tag WHERE draft_id = $1`, draftID); err != nil {
		return fmt.Errorf("failed to clear draft tags: %w", err)
	}
	for i, name := range tags {
		if _, err := tx.Exec(`
			INSERT INTO draft_tag (draft_id, name, position)
			VALUES ($1, $2, $3)
		`, draftID, name, i); err != nil {
			return fmt.Errorf("failed to insert draft tag: %w", err)
		}
	}

	return tx.Commit()
}
