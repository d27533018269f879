// Package domain defines the core client-side models for fittrack.
package domain

import "encoding/json"

// MaxCredentialLength is the maximum length of a username or password
// after trimming.
const MaxCredentialLength = 50

// User is the server-issued user record.
//
// The client never interprets it beyond presence and an identifier for
// display; unknown fields are preserved in Raw for rendering.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`

	// Raw holds the full record as received from the server.
	Raw json.RawMessage `json:"-"`
}

// Credentials are the login inputs. Both fields must be non-empty after
// trimming and at most MaxCredentialLength characters.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
