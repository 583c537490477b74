// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Askly API server.

Askly is a community Q&A service. Clients build up a question in a
server-held draft (title, rich-text explanation, an ordered tag list),
then submit it for validation and publication. Published questions can
be listed, viewed, voted on, and answered, and the server renders
summary-card projections with human-readable metrics.

# Starting the Server

The server reads configuration from environment variables (a .env file
is loaded if present) or CLI flags:

	DATABASE_URL=askly.db go run main.go

Or with flags:

	go run main.go -p 3419 -t sqlite -d askly.db

# Configuration

Required settings:

  - AUTHOR_KEY_SALT (--author-salt): Secret for author key HMAC
  - SLUG_SALT (--slug-salt): Secret for detail slug generation and IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string or sqlite file path
  - BASE_URL (-b): Public base URL used in card links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (drafts, questions, cards, themes, sessions)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - richtext: HTML sanitization and plain-text extraction
  - format: Compact numbers and relative timestamps
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
