// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateDraftRequest: author_id, mode, question_id (edit mode)
  - UpdateDraftRequest: title, explanation (both optional)
  - AddTagRequest: tag
  - VoteRequest: author_id, direction
  - AddAnswerRequest: author_id, content
  - RegisterSessionRequest: author_id, author_name
  - SetThemeRequest: mode

# Response Types

Types for JSON responses:

  - CreateDraftResponse: draft_id
  - AddTagResponse: tags (full ordered sequence after the add)
  - SubmitDraftResponse: question_id, redirect
  - SubmitRejectedResponse: errors ([]FieldError)
  - VoteResponse: upvotes, downvotes
  - RegisterSessionResponse: session_token
  - ThemeResponse: mode
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Draft: an in-progress question with its ordered tag sequence
  - Question: persisted question metadata and counters
  - Tag: id and display name
  - Session: a registered author session
  - QuestionCard: read-only card projection with formatted counts

# Constants

Draft modes:

	ModeAsk  = "ask"
	ModeEdit = "edit"

Draft status:

	StatusIdle       = "idle"
	StatusSubmitting = "submitting"

Theme modes:

	ThemeLight = "light"
	ThemeDark  = "dark"

Vote directions:

	VoteUp   = "up"
	VoteDown = "down"

Field rules:

	MaxTagLength         = 15
	MaxTags              = 3
	MinTitleLength       = 5
	MaxTitleLength       = 130
	MinExplanationLength = 20
*/
package models
