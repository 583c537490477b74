// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/askly/auth"
	"github.com/danielhkuo/askly/cliparse"
	"github.com/danielhkuo/askly/middleware"
	"github.com/danielhkuo/askly/models"
	"github.com/danielhkuo/askly/richtext"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg}
}

// ListQuestions handles GET /questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, content, author_id, created_at
		FROM question
		ORDER BY created_at DESC, id
		LIMIT 50
	`)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	questions := []models.QuestionWithTags{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.AuthorID, &q.CreatedAt); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		questions = append(questions, models.QuestionWithTags{Question: q})
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range questions {
		q := &questions[i]
		if err := h.fillCounters(&q.Question); err != nil {
			slog.Error("failed to count metrics", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		tags, err := loadQuestionTags(h.db, q.Question.ID)
		if err != nil {
			slog.Error("failed to load tags", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		q.Tags = tags
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// GetQuestion handles GET /questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	var q models.Question
	err := h.db.QueryRow(`
		SELECT id, title, content, author_id, created_at
		FROM question
		WHERE id = $1
	`, questionID).Scan(&q.ID, &q.Title, &q.Content, &q.AuthorID, &q.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := h.fillCounters(&q); err != nil {
		slog.Error("failed to count metrics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tags, err := loadQuestionTags(h.db, questionID)
	if err != nil {
		slog.Error("failed to load tags", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionWithTags{Question: q, Tags: tags})
}

// RecordView handles POST /questions/{id}/views
// Views deduplicate per client IP hash, so refreshing the page doesn't
// inflate the metric.
func (h *QuestionHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	if !h.questionExists(w, questionID) {
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.SlugSalt)
	_, err := h.db.Exec(`
		INSERT INTO view_event (question_id, ip_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (question_id, ip_hash) DO NOTHING
	`, questionID, ipHash, time.Now())
	if err != nil {
		slog.Error("failed to record view", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record view")
		return
	}

	var views int64
	if err := h.db.QueryRow(`
		SELECT COUNT(*) FROM view_event WHERE question_id = $1
	`, questionID).Scan(&views); err != nil {
		slog.Error("failed to count views", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int64{"views": views})
}

// Vote handles POST /questions/{id}/votes
// One vote per author per question; voting again switches direction.
func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.AuthorID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_id is required")
		return
	}
	if req.Direction != models.VoteUp && req.Direction != models.VoteDown {
		middleware.ErrorResponse(w, http.StatusBadRequest, "direction must be up or down")
		return
	}

	if !h.questionExists(w, questionID) {
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO vote (question_id, author_id, direction, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, author_id) DO UPDATE SET direction = excluded.direction
	`, questionID, req.AuthorID, req.Direction, time.Now())
	if err != nil {
		slog.Error("failed to record vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	m, err := countMetrics(h.db, questionID)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote recorded", "question_id", questionID, "direction", req.Direction)
	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Upvotes: m.Upvotes, Downvotes: m.Downvotes})
}

// AddAnswer handles POST /questions/{id}/answers
func (h *QuestionHandler) AddAnswer(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	var req models.AddAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.AuthorID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_id is required")
		return
	}

	content := richtext.Sanitize(req.Content)
	if richtext.PlainLength(content) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	if !h.questionExists(w, questionID) {
		return
	}

	answerID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate answer ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add answer")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO answer (id, question_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, answerID, questionID, req.AuthorID, content, time.Now())
	if err != nil {
		slog.Error("failed to insert answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add answer")
		return
	}

	slog.Info("answer added", "question_id", questionID, "answer_id", answerID)
	middleware.JSONResponse(w, http.StatusCreated, models.AddAnswerResponse{AnswerID: answerID})
}

// questionExists writes the 404 itself and reports whether to continue.
func (h *QuestionHandler) questionExists(w http.ResponseWriter, questionID string) bool {
	var one int
	err := h.db.QueryRow("SELECT 1 FROM question WHERE id = $1", questionID).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return false
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	return true
}

func (h *QuestionHandler) fillCounters(q *models.Question) error {
	m, err := countMetrics(h.db, q.ID)
	if err != nil {
		return err
	}
	q.Upvotes, q.Downvotes = m.Upvotes, m.Downvotes
	q.Answers, q.Views = m.Answers, m.Views
	return nil
}

// questionMetrics are the raw counter values behind a card.
type questionMetrics struct {
	Upvotes   int64
	Downvotes int64
	Answers   int64
	Views     int64
}

func countMetrics(db *sql.DB, questionID string) (questionMetrics, error) {
	var m questionMetrics
	err := db.QueryRow(`
		SELECT
			COUNT(CASE WHEN direction = 'up' THEN 1 END),
			COUNT(CASE WHEN direction = 'down' THEN 1 END)
		FROM vote
		WHERE question_id = $1
	`, questionID).Scan(&m.Upvotes, &m.Downvotes)
	if err != nil {
		return m, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM answer WHERE question_id = $1
	`, questionID).Scan(&m.Answers)
	if err != nil {
		return m, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM view_event WHERE question_id = $1
	`, questionID).Scan(&m.Views)
	return m, err
}

// loadQuestionTags returns a question's tags in position order.
func loadQuestionTags(db *sql.DB, questionID string) ([]models.Tag, error) {
	rows, err := db.Query(`
		SELECT t.id, t.name
		FROM question_tag qt
		JOIN tag t ON t.id = qt.tag_id
		WHERE qt.question_id = $1
		ORDER BY qt.position
	`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
