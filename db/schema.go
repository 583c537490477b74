// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the sqlite/postgres common subset (TEXT ids,
// CURRENT_TIMESTAMP defaults).
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Authors (identity is external; this is a display-name registry)
CREATE TABLE IF NOT EXISTS author (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    author_id TEXT NOT NULL REFERENCES author(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_question_author_id ON question(author_id);
CREATE INDEX IF NOT EXISTS idx_question_created_at ON question(created_at);

-- Tags (global registry, shared across questions)
CREATE TABLE IF NOT EXISTS tag (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

-- Question/tag links, ordered by position
CREATE TABLE IF NOT EXISTS question_tag (
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    PRIMARY KEY (question_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_question_tag_question_id ON question_tag(question_id);

-- Drafts (in-progress questions, one per open form)
CREATE TABLE IF NOT EXISTS draft (
    id TEXT PRIMARY KEY,
    author_id TEXT NOT NULL,
    mode TEXT NOT NULL DEFAULT 'ask' CHECK (mode IN ('ask', 'edit')),
    question_id TEXT REFERENCES question(id) ON DELETE CASCADE,
    title TEXT NOT NULL DEFAULT '',
    explanation TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'idle' CHECK (status IN ('idle', 'submitting')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_draft_author_id ON draft(author_id);

-- Draft tags, ordered by position
CREATE TABLE IF NOT EXISTS draft_tag (
    draft_id TEXT NOT NULL REFERENCES draft(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (draft_id, name)
);

CREATE INDEX IF NOT EXISTS idx_draft_tag_draft_id ON draft_tag(draft_id);

-- Votes (one per author per question; re-voting switches direction)
CREATE TABLE IF NOT EXISTS vote (
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    author_id TEXT NOT NULL,
    direction TEXT NOT NULL CHECK (direction IN ('up', 'down')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (question_id, author_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_question_id ON vote(question_id);

-- Answers
CREATE TABLE IF NOT EXISTS answer (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    author_id TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);

-- View events (IP-hash keyed so repeat views don't inflate the count)
CREATE TABLE IF NOT EXISTS view_event (
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    ip_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (question_id, ip_hash)
);

CREATE INDEX IF NOT EXISTS idx_view_event_question_id ON view_event(question_id);

-- Sessions (per-browser identity for preferences and history)
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    author_id TEXT NOT NULL REFERENCES author(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_session_author_id ON session(author_id);

-- Theme preference (one row per session; absent row means default)
CREATE TABLE IF NOT EXISTS theme_preference (
    session_id TEXT PRIMARY KEY REFERENCES session(id) ON DELETE CASCADE,
    mode TEXT NOT NULL CHECK (mode IN ('light', 'dark')),
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
