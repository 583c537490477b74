// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Askly API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Draft lifecycle (the question form):

	POST   /drafts                 - Create draft (form mount)
	GET    /drafts/{id}            - Read draft with ordered tags
	PUT    /drafts/{id}            - Update title/explanation
	POST   /drafts/{id}/tags       - Add tag
	DELETE /drafts/{id}/tags/{tag} - Remove tag (ask mode only)
	POST   /drafts/{id}/submit     - Validate and persist

Questions:

	GET  /questions               - Newest questions with tags
	GET  /questions/{id}          - One question with tags
	POST /questions/{id}/views    - Record a view (IP-deduplicated)
	POST /questions/{id}/votes    - Up/down vote
	POST /questions/{id}/answers  - Add answer

Cards:

	GET /questions/{id}/card - Summary card projection
	GET /feed                - Home feed of cards

Sessions and theme:

	POST /sessions/register          - Register session
	GET  /sessions/{token}           - Session info
	GET  /sessions/{token}/questions - Author's questions
	GET  /sessions/{token}/theme     - Read mode (never mutates)
	PUT  /sessions/{token}/theme     - Set mode (the only writer)

# Handler Initialization

The router creates handler instances with dependency injection:

	draftHandler := handlers.NewDraftHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	cardHandler := handlers.NewCardHandler(db, cfg)
	themeHandler := handlers.NewThemeHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
