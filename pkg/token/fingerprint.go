// Package token provides token hashing utilities.
package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash computes the hex-encoded SHA-256 hash of a token.
func Hash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Fingerprint returns a short, log-safe identifier for a token. It is
// derived from the hash so the token itself never reaches a log line.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	return Hash(token)[:12]
}

// Verify compares a token against an expected hash in constant time.
func Verify(token, expectedHash string) bool {
	actual := Hash(token)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expectedHash)) == 1
}
