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
	"github.com/danielhkuo/askly/format"
	"github.com/danielhkuo/askly/middleware"
	"github.com/danielhkuo/askly/models"
)

type CardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCardHandler(db *sql.DB, cfg cliparse.Config) *CardHandler {
	return &CardHandler{db: db, cfg: cfg}
}

// GetCard handles GET /questions/{id}/card
// A read-only projection: title, tag badges, author metadata, and the
// four metrics as display strings.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	card, err := buildCard(h.db, h.cfg, questionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to build card", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, card)
}

// GetFeed handles GET /feed
// The home page: cards for the newest questions.
func (h *CardHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id FROM question ORDER BY created_at DESC, id LIMIT 20
	`)
	if err != nil {
		slog.Error("failed to query feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan feed row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	cards := []models.QuestionCard{}
	for _, id := range ids {
		card, err := buildCard(h.db, h.cfg, id)
		if err != nil {
			slog.Error("failed to build card", "error", err, "question_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		cards = append(cards, card)
	}

	middleware.JSONResponse(w, http.StatusOK, cards)
}

// buildCard assembles the card projection for one question.
func buildCard(db *sql.DB, cfg cliparse.Config, questionID string) (models.QuestionCard, error) {
	var (
		card      models.QuestionCard
		createdAt time.Time
		joinedAt  time.Time
	)
	err := db.QueryRow(`
		SELECT q.id, q.title, q.created_at, a.id, a.name, a.joined_at
		FROM question q
		JOIN author a ON a.id = q.author_id
		WHERE q.id = $1
	`, questionID).Scan(
		&card.ID, &card.Title, &createdAt,
		&card.Author.ID, &card.Author.Name, &joinedAt,
	)
	if err != nil {
		return models.QuestionCard{}, err
	}

	card.DetailURL = cfg.BaseURL + "/questions/" + auth.GenerateDetailSlug(questionID, cfg.SlugSalt)
	card.Asked = format.RelativeTime(createdAt)
	card.Author.Joined = format.JoinedDate(joinedAt)

	tags, err := loadQuestionTags(db, questionID)
	if err != nil {
		return models.QuestionCard{}, err
	}
	card.Tags = tags

	m, err := countMetrics(db, questionID)
	if err != nil {
		return models.QuestionCard{}, err
	}
	card.Upvotes = format.CompactNumber(m.Upvotes)
	card.Downvotes = format.CompactNumber(m.Downvotes)
	card.Answers = format.CompactNumber(m.Answers)
	card.Views = format.CompactNumber(m.Views)

	return card, nil
}
