// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAuthorKey = errors.New("invalid author key")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAuthorKey creates an HMAC-based key proving question ownership.
// Deterministic from question ID and author ID, so it never needs storing.
func GenerateAuthorKey(questionID, authorID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(questionID))
	h.Write([]byte{0})
	h.Write([]byte(authorID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAuthorKey checks that the caller holds the owner key for a question
func ValidateAuthorKey(questionID, authorID, authorKey, salt string) error {
	expected := GenerateAuthorKey(questionID, authorID, salt)
	if !hmac.Equal([]byte(authorKey), []byte(expected)) {
		return ErrInvalidAuthorKey
	}
	return nil
}

// GenerateDetailSlug creates a short, deterministic URL slug for a question
// detail page. Uses HMAC for determinism and base62 for URL-friendliness.
func GenerateDetailSlug(questionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(questionID))
	sum := h.Sum(nil)

	// Take first 8 bytes for a shorter slug
	shortHash := sum[:8]

	return base62Encode(shortHash)
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
// This creates URL-friendly slugs without special characters
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Convert bytes to a big integer
	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	// Reverse the string
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way hash of an IP address for privacy.
// Includes salt to prevent rainbow table attacks. Used to deduplicate
// view counting without storing raw addresses.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
