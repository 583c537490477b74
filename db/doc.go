// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - author: Display-name registry for external identities
  - question: Persisted question metadata
  - tag: Global tag registry
  - question_tag: Ordered tag links per question
  - draft: In-progress questions (one per open form)
  - draft_tag: Ordered tag sequence per draft
  - vote: One vote per author per question
  - answer: Answers per question
  - view_event: IP-hash deduplicated view counting
  - session: Per-browser sessions
  - theme_preference: Persisted light/dark mode per session

# Relationships

	author 1──* question
	author 1──* session
	question *──* tag (via question_tag)
	question 1──* vote
	question 1──* answer
	question 1──* view_event
	draft 1──* draft_tag
	session 1──1 theme_preference

Foreign keys use ON DELETE CASCADE where the child has no life of its own.

# Indexes

Performance indexes on:

  - question.author_id
  - question.created_at
  - question_tag.question_id
  - draft.author_id
  - draft_tag.draft_id
  - vote.question_id
  - answer.question_id
  - view_event.question_id
  - session.author_id
*/
package db
