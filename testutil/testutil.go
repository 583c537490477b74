// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/askly/auth"
	"github.com/danielhkuo/askly/cliparse"
	"github.com/danielhkuo/askly/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own named memory database so tests stay
// isolated; the single-connection pool keeps it alive and serializes
// writers.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate test database name: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3419,
		DatabaseURL:   "file::memory:",
		DatabaseType:  "sqlite",
		BaseURL:       "http://localhost:3419",
		AuthorKeySalt: "test-author-salt",
		SlugSalt:      "test-slug-salt",
	}
}

// CreateTestAuthor inserts an author row and returns its ID
func CreateTestAuthor(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	authorID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO author (id, name, joined_at)
		VALUES ($1, $2, $3)
	`, authorID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test author: %v", err)
	}

	return authorID
}

// CreateTestQuestion inserts a question with the given tags and returns
// its ID
func CreateTestQuestion(t *testing.T, conn *sql.DB, authorID, title string, tags []string) string {
	t.Helper()

	questionID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO question (id, title, content, author_id, created_at)
		VALUES ($1, $2, '<p>test question content body</p>', $3, $4)
	`, questionID, title, authorID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	for i, name := range tags {
		tagID, _ := auth.GenerateID(8)
		// Reuse the registry row when the tag already exists
		var existing string
		err := conn.QueryRow("SELECT id FROM tag WHERE name = $1", name).Scan(&existing)
		if err == sql.ErrNoRows {
			if _, err := conn.Exec("INSERT INTO tag (id, name) VALUES ($1, $2)", tagID, name); err != nil {
				t.Fatalf("Failed to create test tag: %v", err)
			}
		} else if err != nil {
			t.Fatalf("Failed to query test tag: %v", err)
		} else {
			tagID = existing
		}

		_, err = conn.Exec(`
			INSERT INTO question_tag (question_id, tag_id, position)
			VALUES ($1, $2, $3)
		`, questionID, tagID, i)
		if err != nil {
			t.Fatalf("Failed to link test tag: %v", err)
		}
	}

	return questionID
}

// CreateTestDraft inserts a draft row and returns its ID.
// mode should be "ask" or "edit"; questionID is required for edit mode.
func CreateTestDraft(t *testing.T, conn *sql.DB, authorID, mode string, questionID *string) string {
	t.Helper()

	draftID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO draft (id, author_id, mode, question_id, status, created_at)
		VALUES ($1, $2, $3, $4, 'idle', $5)
	`, draftID, authorID, mode, questionID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test draft: %v", err)
	}

	return draftID
}

// SetDraftFields updates a draft's title and explanation directly
func SetDraftFields(t *testing.T, conn *sql.DB, draftID, title, explanation string) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE draft SET title = $1, explanation = $2 WHERE id = $3
	`, title, explanation, draftID)
	if err != nil {
		t.Fatalf("Failed to set draft fields: %v", err)
	}
}

// AddTestDraftTag appends a tag to a draft's sequence
func AddTestDraftTag(t *testing.T, conn *sql.DB, draftID, name string, position int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO draft_tag (draft_id, name, position)
		VALUES ($1, $2, $3)
	`, draftID, name, position)
	if err != nil {
		t.Fatalf("Failed to add test draft tag: %v", err)
	}
}

// CreateTestSession registers a session for an author and returns the token
func CreateTestSession(t *testing.T, conn *sql.DB, authorID string) string {
	t.Helper()

	token := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO session (id, author_id, created_at)
		VALUES ($1, $2, $3)
	`, token, authorID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
