// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/askly/models"
	"github.com/danielhkuo/askly/testutil"
)

func TestRegisterSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewSessionHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/sessions/register",
		models.RegisterSessionRequest{AuthorID: "author-1", AuthorName: "alice"}, nil)
	w := httptest.NewRecorder()
	h.Register(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.RegisterSessionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SessionToken == "" {
		t.Fatal("Expected non-empty session token")
	}

	// The session resolves back to the author
	getReq := testutil.MakeRequest("GET", "/sessions/"+resp.SessionToken, nil, nil)
	getReq.SetPathValue("token", resp.SessionToken)
	getW := httptest.NewRecorder()
	h.GetSession(getW, getReq)

	testutil.AssertStatus(t, getW, 200)
	var session models.Session
	testutil.AssertJSON(t, getW, &session)
	if session.AuthorID != "author-1" || session.AuthorName != "alice" {
		t.Errorf("Unexpected session: %+v", session)
	}
}

func TestRegisterSessionUpdatesName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewSessionHandler(conn, testutil.GetTestConfig())

	register := func(name string) models.RegisterSessionResponse {
		req := testutil.MakeRequest("POST", "/sessions/register",
			models.RegisterSessionRequest{AuthorID: "author-1", AuthorName: name}, nil)
		w := httptest.NewRecorder()
		h.Register(w, req)
		testutil.AssertStatus(t, w, 201)
		var resp models.RegisterSessionResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	register("alice")
	second := register("alice cooper")

	// Re-registering keeps one author row with the latest display name
	var count int
	conn.QueryRow("SELECT COUNT(*) FROM author WHERE id = 'author-1'").Scan(&count)
	if count != 1 {
		t.Errorf("Expected one author row, got %d", count)
	}

	getReq := testutil.MakeRequest("GET", "/sessions/"+second.SessionToken, nil, nil)
	getReq.SetPathValue("token", second.SessionToken)
	getW := httptest.NewRecorder()
	h.GetSession(getW, getReq)

	var session models.Session
	testutil.AssertJSON(t, getW, &session)
	if session.AuthorName != "alice cooper" {
		t.Errorf("Expected updated name, got %q", session.AuthorName)
	}
}

func TestRegisterSessionValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewSessionHandler(conn, testutil.GetTestConfig())

	tests := []struct {
		name string
		body models.RegisterSessionRequest
	}{
		{"missing author_id", models.RegisterSessionRequest{AuthorName: "alice"}},
		{"missing author_name", models.RegisterSessionRequest{AuthorID: "author-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions/register", tt.body, nil)
			w := httptest.NewRecorder()
			h.Register(w, req)
			testutil.AssertStatus(t, w, 400)
		})
	}
}

func TestGetMyQuestions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewSessionHandler(conn, testutil.GetTestConfig())

	alice := testutil.CreateTestAuthor(t, conn, "alice")
	bob := testutil.CreateTestAuthor(t, conn, "bob")
	testutil.CreateTestQuestion(t, conn, alice, "Question asked by alice", nil)
	testutil.CreateTestQuestion(t, conn, bob, "Question asked by bob", nil)

	token := testutil.CreateTestSession(t, conn, alice)

	req := testutil.MakeRequest("GET", "/sessions/"+token+"/questions", nil, nil)
	req.SetPathValue("token", token)
	w := httptest.NewRecorder()
	h.GetMyQuestions(w, req)

	testutil.AssertStatus(t, w, 200)

	var questions []models.Question
	testutil.AssertJSON(t, w, &questions)
	if len(questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(questions))
	}
	if questions[0].Title != "Question asked by alice" {
		t.Errorf("Unexpected question: %q", questions[0].Title)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewSessionHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/sessions/nope", nil, nil)
	req.SetPathValue("token", "nope")
	w := httptest.NewRecorder()
	h.GetSession(w, req)

	testutil.AssertStatus(t, w, 404)
}
