// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package richtext handles user-authored HTML from the question editor.

# Sanitization

User content passes through a bluemonday UGC policy before storage:

	clean := richtext.Sanitize(req.Content)

Formatting, links, and code blocks survive; scripts, styles, and event
handler attributes do not.

# Plain Text

Validation rules measure the prose, not the markup:

	if richtext.PlainLength(req.Explanation) < models.MinExplanationLength {
		// reject
	}

PlainText strips all elements and unescapes entities, so "<p>a &amp; b</p>"
measures 5 characters.
*/
package richtext
