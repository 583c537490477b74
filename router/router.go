// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/askly/cliparse"
	"github.com/danielhkuo/askly/handlers"
	"github.com/danielhkuo/askly/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	cardHandler := handlers.NewCardHandler(db, cfg)
	themeHandler := handlers.NewThemeHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Draft lifecycle (the question form)
	mux.HandleFunc("POST /drafts", middleware.WithLogging(draftHandler.CreateDraft))
	mux.HandleFunc("GET /drafts/{id}", middleware.WithLogging(draftHandler.GetDraft))
	mux.HandleFunc("PUT /drafts/{id}", middleware.WithLogging(draftHandler.UpdateDraft))
	mux.HandleFunc("POST /drafts/{id}/tags", middleware.WithLogging(draftHandler.AddTag))
	mux.HandleFunc("DELETE /drafts/{id}/tags/{tag}", middleware.WithLogging(draftHandler.RemoveTag))
	mux.HandleFunc("POST /drafts/{id}/submit", middleware.WithLogging(draftHandler.SubmitDraft))

	// Questions (public reads plus metric writes)
	mux.HandleFunc("GET /questions", middleware.WithLogging(questionHandler.ListQuestions))
	mux.HandleFunc("GET /questions/{id}", middleware.WithLogging(questionHandler.GetQuestion))
	mux.HandleFunc("POST /questions/{id}/views", middleware.WithLogging(questionHandler.RecordView))
	mux.HandleFunc("POST /questions/{id}/votes", middleware.WithLogging(questionHandler.Vote))
	mux.HandleFunc("POST /questions/{id}/answers", middleware.WithLogging(questionHandler.AddAnswer))

	// Card projections
	mux.HandleFunc("GET /questions/{id}/card", middleware.WithLogging(cardHandler.GetCard))
	mux.HandleFunc("GET /feed", middleware.WithLogging(cardHandler.GetFeed))

	// Sessions and theme preference
	mux.HandleFunc("POST /sessions/register", middleware.WithLogging(sessionHandler.Register))
	mux.HandleFunc("GET /sessions/{token}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("GET /sessions/{token}/questions", middleware.WithLogging(sessionHandler.GetMyQuestions))
	mux.HandleFunc("GET /sessions/{token}/theme", middleware.WithLogging(themeHandler.GetTheme))
	mux.HandleFunc("PUT /sessions/{token}/theme", middleware.WithLogging(themeHandler.SetTheme))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("askly API v1"))
	})

	return mux
}
