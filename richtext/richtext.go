// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package richtext

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are built once; Sanitize is safe for concurrent use.
var (
	ugcPolicy   = bluemonday.UGCPolicy()
	stripPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user-authored HTML down to the user-generated-content
// allowlist (formatting, links, code blocks). Script, style, and event
// handler attributes never survive.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// PlainText strips all markup and entity-escapes, returning the prose
// content of a rich text value with outer whitespace trimmed.
func PlainText(input string) string {
	stripped := stripPolicy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// PlainLength counts the prose characters of a rich text value.
// Validation rules measure what the user actually wrote, not markup.
func PlainLength(input string) int {
	return utf8.RuneCountInString(PlainText(input))
}
