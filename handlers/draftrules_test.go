// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"reflect"
	"strings"
	"testing"
)

func TestAddTag(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		raw      string
		want     []string
		wantErr  string // empty means no error expected
	}{
		{
			name: "append to empty",
			tags: nil,
			raw:  "css",
			want: []string{"css"},
		},
		{
			name: "preserves insertion order",
			tags: []string{"go", "http"},
			raw:  "sql",
			want: []string{"go", "http", "sql"},
		},
		{
			name: "trims whitespace",
			tags: nil,
			raw:  "  css  ",
			want: []string{"css"},
		},
		{
			name:    "empty input",
			tags:    []string{"go"},
			raw:     "   ",
			want:    []string{"go"},
			wantErr: MsgTagRequired,
		},
		{
			name:    "too long",
			tags:    []string{"go"},
			raw:     strings.Repeat("x", 16),
			want:    []string{"go"},
			wantErr: MsgTagTooLong,
		},
		{
			name: "fifteen chars is allowed",
			tags: nil,
			raw:  strings.Repeat("x", 15),
			want: []string{strings.Repeat("x", 15)},
		},
		{
			name: "duplicate is a silent no-op",
			tags: []string{"css"},
			raw:  "css",
			want: []string{"css"},
		},
		{
			name: "duplicate check is case-insensitive",
			tags: []string{"CSS"},
			raw:  "css",
			want: []string{"CSS"},
		},
		{
			name:    "cap of three",
			tags:    []string{"a", "b", "c"},
			raw:     "d",
			want:    []string{"a", "b", "c"},
			wantErr: MsgTagLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ferr := AddTag(tt.tags, tt.raw)

			if tt.wantErr == "" && ferr != nil {
				t.Fatalf("AddTag() unexpected error: %v", ferr.Message)
			}
			if tt.wantErr != "" {
				if ferr == nil {
					t.Fatalf("AddTag() expected error %q, got none", tt.wantErr)
				}
				if ferr.Message != tt.wantErr {
					t.Errorf("AddTag() error = %q, want %q", ferr.Message, tt.wantErr)
				}
				if ferr.Field != "tags" {
					t.Errorf("AddTag() error field = %q, want 'tags'", ferr.Field)
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AddTag() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddTag_DoesNotMutateInput(t *testing.T) {
	tags := []string{"go", "http"}
	AddTag(tags, "sql")
	if !reflect.DeepEqual(tags, []string{"go", "http"}) {
		t.Errorf("AddTag() mutated its input: %v", tags)
	}
}

func TestAddTag_GrowsByExactlyOne(t *testing.T) {
	// Any valid, non-duplicate input grows the sequence by exactly one.
	inputs := []string{"a", "go", "fifteen-chars-x", "C++"}
	tags := []string{}
	for i, raw := range inputs[:3] {
		next, ferr := AddTag(tags, raw)
		if ferr != nil {
			t.Fatalf("AddTag(%q) unexpected error: %v", raw, ferr.Message)
		}
		if len(next) != i+1 {
			t.Fatalf("AddTag(%q) length = %d, want %d", raw, len(next), i+1)
		}
		// Prior order preserved
		if !reflect.DeepEqual(next[:i], tags[:i]) {
			t.Fatalf("AddTag(%q) reordered existing tags: %v", raw, next)
		}
		tags = next
	}
}

func TestRemoveTag(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		tag  string
		want []string
	}{
		{
			name: "removes and preserves order",
			tags: []string{"go", "http", "sql"},
			tag:  "http",
			want: []string{"go", "sql"},
		},
		{
			name: "first element",
			tags: []string{"go", "http"},
			tag:  "go",
			want: []string{"http"},
		},
		{
			name: "absent tag is a no-op",
			tags: []string{"go"},
			tag:  "rust",
			want: []string{"go"},
		},
		{
			name: "empty sequence",
			tags: nil,
			tag:  "go",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveTag(tt.tags, tt.tag); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemoveTag() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateDraft(t *testing.T) {
	validExplanation := strings.Repeat("a", 20)

	tests := []struct {
		name        string
		title       string
		explanation string
		tags        []string
		wantFields  []string // fields expected to carry errors, in order
	}{
		{
			name:        "valid draft",
			title:       "How do I range over a channel?",
			explanation: validExplanation,
			tags:        []string{"go", "channels"},
			wantFields:  nil,
		},
		{
			name:        "empty title",
			title:       "",
			explanation: validExplanation,
			tags:        []string{},
			wantFields:  []string{"title"},
		},
		{
			name:        "title too short",
			title:       "Why",
			explanation: validExplanation,
			tags:        []string{},
			wantFields:  []string{"title"},
		},
		{
			name:        "title too long",
			title:       strings.Repeat("t", 131),
			explanation: validExplanation,
			tags:        []string{},
			wantFields:  []string{"title"},
		},
		{
			name:        "explanation of 19 characters",
			title:       "A valid question title",
			explanation: strings.Repeat("a", 19),
			tags:        []string{},
			wantFields:  []string{"explanation"},
		},
		{
			name:        "nil tags",
			title:       "A valid question title",
			explanation: validExplanation,
			tags:        nil,
			wantFields:  []string{"tags"},
		},
		{
			name:        "too many tags",
			title:       "A valid question title",
			explanation: validExplanation,
			tags:        []string{"a", "b", "c", "d"},
			wantFields:  []string{"tags"},
		},
		{
			name:        "duplicate tags",
			title:       "A valid question title",
			explanation: validExplanation,
			tags:        []string{"css", "CSS"},
			wantFields:  []string{"tags"},
		},
		{
			name:        "tag too long",
			title:       "A valid question title",
			explanation: validExplanation,
			tags:        []string{strings.Repeat("x", 16)},
			wantFields:  []string{"tags"},
		},
		{
			name:        "multiple failures",
			title:       "",
			explanation: "short",
			tags:        []string{},
			wantFields:  []string{"title", "explanation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDraft(tt.title, tt.explanation, tt.tags)

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateDraft() = %v, want errors on %v", errs, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("ValidateDraft() error %d on field %q, want %q", i, errs[i].Field, field)
				}
				if errs[i].Message == "" {
					t.Errorf("ValidateDraft() error %d has empty message", i)
				}
			}
		})
	}
}
