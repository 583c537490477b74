// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/askly/models"
)

// Tag editor and draft validation rules. Pure functions over the ordered
// tag sequence so the behavior is testable without a database.

// Field-level messages surfaced to the form.
const (
	MsgTagRequired   = "Tag is required"
	MsgTagTooLong    = "Tag length must be less than 15 characters"
	MsgTagLimit      = "A question can have at most 3 tags"
	MsgTitleRequired = "Title is required"
	MsgTitleTooShort = "Title must be at least 5 characters"
	MsgTitleTooLong  = "Title must be at most 130 characters"
	MsgExplanation   = "Explanation must be at least 20 characters"
	MsgTagsMissing   = "Tags must be present"
)

// NormalizeTag trims a raw tag input and checks the per-tag rules.
// A non-nil FieldError means the input cannot become a tag.
func NormalizeTag(raw string) (string, *models.FieldError) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return "", &models.FieldError{Field: "tags", Message: MsgTagRequired}
	}
	if utf8.RuneCountInString(tag) > models.MaxTagLength {
		return "", &models.FieldError{Field: "tags", Message: MsgTagTooLong}
	}
	return tag, nil
}

// AddTag appends a tag to the ordered sequence. Duplicates (compared
// case-insensitively) are a silent no-op: the sequence comes back
// unchanged with no error, matching the form clearing the input without
// complaint. The three-tag cap is a hard error.
func AddTag(tags []string, raw string) ([]string, *models.FieldError) {
	tag, ferr := NormalizeTag(raw)
	if ferr != nil {
		return tags, ferr
	}

	for _, existing := range tags {
		if strings.EqualFold(existing, tag) {
			return tags, nil
		}
	}

	if len(tags) >= models.MaxTags {
		return tags, &models.FieldError{Field: "tags", Message: MsgTagLimit}
	}

	out := make([]string, len(tags), len(tags)+1)
	copy(out, tags)
	return append(out, tag), nil
}

// RemoveTag filters a tag out of the sequence, preserving the relative
// order of the rest. Removing an absent tag is a no-op.
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, existing := range tags {
		if existing != tag {
			out = append(out, existing)
		}
	}
	return out
}

// ValidateDraft checks a draft against the submission schema: required
// title within length bounds, explanation prose of minimum length, tags
// present and individually valid. explanationText must already be plain
// text (markup stripped); length rules measure prose, not HTML.
func ValidateDraft(title, explanationText string, tags []string) []models.FieldError {
	var errs []models.FieldError

	trimmedTitle := strings.TrimSpace(title)
	titleLen := utf8.RuneCountInString(trimmedTitle)
	switch {
	case trimmedTitle == "":
		errs = append(errs, models.FieldError{Field: "title", Message: MsgTitleRequired})
	case titleLen < models.MinTitleLength:
		errs = append(errs, models.FieldError{Field: "title", Message: MsgTitleTooShort})
	case titleLen > models.MaxTitleLength:
		errs = append(errs, models.FieldError{Field: "title", Message: MsgTitleTooLong})
	}

	if utf8.RuneCountInString(strings.TrimSpace(explanationText)) < models.MinExplanationLength {
		errs = append(errs, models.FieldError{Field: "explanation", Message: MsgExplanation})
	}

	if tags == nil {
		errs = append(errs, models.FieldError{Field: "tags", Message: MsgTagsMissing})
		return errs
	}
	if len(tags) > models.MaxTags {
		errs = append(errs, models.FieldError{Field: "tags", Message: MsgTagLimit})
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if _, ferr := NormalizeTag(tag); ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		lower := strings.ToLower(tag)
		if seen[lower] {
			errs = append(errs, models.FieldError{Field: "tags", Message: "Tags must be unique"})
			continue
		}
		seen[lower] = true
	}

	return errs
}
