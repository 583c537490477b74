// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/askly/auth"
	"github.com/danielhkuo/askly/models"
)

// dbQuestionStore is the default QuestionStore, writing questions and
// their tag links in one transaction.
type dbQuestionStore struct {
	db *sql.DB
}

func (s *dbQuestionStore) Create(sub models.QuestionSubmission) (string, error) {
	questionID, err := auth.GenerateID(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate question ID: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Authors register display names through sessions; until then the
	// id doubles as the name so the FK holds.
	_, err = tx.Exec(`
		INSERT INTO author (id, name, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, sub.AuthorID, sub.AuthorID, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to upsert author: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO question (id, title, content, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, questionID, sub.Title, sub.Content, sub.AuthorID, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to insert question: %w", err)
	}

	for i, name := range sub.Tags {
		tagID, err := findOrCreateTag(tx, name)
		if err != nil {
			return "", err
		}
		_, err = tx.Exec(`
			INSERT INTO question_tag (question_id, tag_id, position)
			VALUES ($1, $2, $3)
		`, questionID, tagID, i)
		if err != nil {
			return "", fmt.Errorf("failed to link tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit question: %w", err)
	}

	return questionID, nil
}

func (s *dbQuestionStore) Update(questionID string, sub models.QuestionSubmission) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE question SET title = $1, content = $2 WHERE id = $3
	`, sub.Title, sub.Content, questionID)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %s not found", questionID)
	}

	// Edit mode only grows the tag set; existing links keep their
	// positions and new tags append after them.
	var next int
	err = tx.QueryRow(`
		SELECT COALESCE(MAX(position), -1) + 1 FROM question_tag WHERE question_id = $1
	`, questionID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read tag positions: %w", err)
	}

	for _, name := range sub.Tags {
		tagID, err := findOrCreateTag(tx, name)
		if err != nil {
			return err
		}

		var linked int
		err = tx.QueryRow(`
			SELECT COUNT(*) FROM question_tag WHERE question_id = $1 AND tag_id = $2
		`, questionID, tagID).Scan(&linked)
		if err != nil {
			return fmt.Errorf("failed to check tag link: %w", err)
		}
		if linked > 0 {
			continue
		}

		_, err = tx.Exec(`
			INSERT INTO question_tag (question_id, tag_id, position)
			VALUES ($1, $2, $3)
		`, questionID, tagID, next)
		if err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
		next++
	}

	return tx.Commit()
}

// findOrCreateTag resolves a tag name to its registry id, creating the
// registry row on first use.
func findOrCreateTag(tx *sql.Tx, name string) (string, error) {
	var tagID string
	err := tx.QueryRow("SELECT id FROM tag WHERE name = $1", name).Scan(&tagID)
	if err == nil {
		return tagID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to query tag: %w", err)
	}

	tagID, err = auth.GenerateID(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate tag ID: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO tag (id, name) VALUES ($1, $2)", tagID, name); err != nil {
		return "", fmt.Errorf("failed to insert tag: %w", err)
	}
	return tagID, nil
}
