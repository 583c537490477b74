package models

import "time"

// Draft mode constants
const (
	ModeAsk  = "ask"
	ModeEdit = "edit"
)

// Draft status constants
const (
	StatusIdle       = "idle"
	StatusSubmitting = "submitting"
)

// Theme mode constants
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Vote direction constants
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Tag rules
const (
	MaxTagLength = 15
	MaxTags      = 3
)

// Title and explanation rules
const (
	MinTitleLength       = 5
	MaxTitleLength       = 130
	MinExplanationLength = 20
)

// Request types

type CreateDraftRequest struct {
	AuthorID   string `json:"author_id"`
	Mode       string `json:"mode"`
	QuestionID string `json:"question_id,omitempty"`
}

type UpdateDraftRequest struct {
	Title       *string `json:"title,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
}

type AddTagRequest struct {
	Tag string `json:"tag"`
}

type SubmitDraftRequest struct {
	Path string `json:"path,omitempty"`
}

type VoteRequest struct {
	AuthorID  string `json:"author_id"`
	Direction string `json:"direction"`
}

type AddAnswerRequest struct {
	AuthorID string `json:"author_id"`
	Content  string `json:"content"`
}

type RegisterSessionRequest struct {
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
}

type SetThemeRequest struct {
	Mode string `json:"mode"`
}

// Response types

type CreateDraftResponse struct {
	DraftID string `json:"draft_id"`
}

type AddTagResponse struct {
	Tags []string `json:"tags"`
}

type SubmitDraftResponse struct {
	QuestionID string `json:"question_id"`
	AuthorKey  string `json:"author_key,omitempty"`
	Redirect   string `json:"redirect"`
}

// QuestionSubmission is the serialized payload handed to the
// persistence operation on a valid submit.
type QuestionSubmission struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	AuthorID string   `json:"author"`
	Path     string   `json:"path"`
}

type SubmitRejectedResponse struct {
	Errors []FieldError `json:"errors"`
}

type VoteResponse struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

type AddAnswerResponse struct {
	AnswerID string `json:"answer_id"`
}

type RegisterSessionResponse struct {
	SessionToken string `json:"session_token"`
}

type ThemeResponse struct {
	Mode string `json:"mode"`
}

// FieldError pins a validation failure to the form field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Domain types

type Draft struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Mode        string    `json:"mode"`
	QuestionID  *string   `json:"question_id,omitempty"`
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type Question struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	Views     int64     `json:"views"`
	Answers   int64     `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type QuestionWithTags struct {
	Question Question `json:"question"`
	Tags     []Tag    `json:"tags"`
}

type Session struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Card types

type CardAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Joined string `json:"joined"`
}

// QuestionCard is the read-only summary projection of a persisted
// question. All counts are pre-formatted display strings.
type QuestionCard struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	DetailURL string     `json:"detail_url"`
	Tags      []Tag      `json:"tags"`
	Author    CardAuthor `json:"author"`
	Upvotes   string     `json:"upvotes"`
	Downvotes string     `json:"downvotes"`
	Answers   string     `json:"answers"`
	Views     string     `json:"views"`
	Asked     string     `json:"asked"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
