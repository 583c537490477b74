// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides key and identifier generation utilities.

# Author Keys

Author keys use HMAC-SHA256 to create deterministic, verifiable proof of
question ownership:

	key := auth.GenerateAuthorKey(questionID, authorID, salt)
	err := auth.ValidateAuthorKey(questionID, authorID, key, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, the same question, author, and salt always produce the
same key. This allows validating owner-only operations (question edits)
without storing the key in the database.

# Detail Slugs

Detail slugs create URL-friendly identifiers for question detail pages:

	slug := auth.GenerateDetailSlug(questionID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Like
author keys, they're deterministic from the question ID and salt.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving view deduplication:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
