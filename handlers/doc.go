// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Askly API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - DraftHandler: Draft lifecycle (create, edit fields, tag editing, submit)
  - QuestionHandler: Persisted questions (fetch, views, votes, answers)
  - CardHandler: Summary card projections and the home feed
  - ThemeHandler: Per-session light/dark preference
  - SessionHandler: Session registration and author history

Handlers are created via constructor functions that accept *sql.DB and Config:

	draftHandler := handlers.NewDraftHandler(db, cfg)

# Draft Lifecycle

A draft is the authoring form's server state:

	POST   /drafts                   → CreateDraft (form mount)
	PUT    /drafts/{id}              → UpdateDraft (field typing)
	POST   /drafts/{id}/tags         → AddTag
	DELETE /drafts/{id}/tags/{tag}   → RemoveTag (ask mode only)
	POST   /drafts/{id}/submit       → SubmitDraft

Submit validates, flips the draft to submitting (the mutual-exclusion
flag), runs the persistence call, and on success deletes the draft and
returns the home-route redirect. Persistence failures are logged and
answered with a generic 502; the draft returns to idle.

# Tag Editor Rules

The pure rules live in draftrules.go:

	next, ferr := handlers.AddTag(tags, raw)
	next := handlers.RemoveTag(tags, tag)
	errs := handlers.ValidateDraft(title, plainText, tags)

Tags are trimmed, capped at 15 characters and 3 per question, and
deduplicated case-insensitively while preserving insertion order.

# Edit Mode

Editing an existing question goes through an edit-mode draft, created
with the X-Author-Key header (HMAC proof of ownership from the original
submit). Edit mode hides the tag remove affordance: RemoveTag returns
409 and submits may only grow the tag set.

# Card Projections

	GET /questions/{id}/card → one card
	GET /feed                → newest questions as cards

Cards carry pre-formatted metric strings (1500 votes → "1.5k") and
relative timestamps ("3 days ago").
*/
package handlers
