// Package store provides durable client-side storage for the auth token.
//
// The session store is the only component that reads or writes through
// this package. A held token is an opaque string; its presence says
// nothing about validity.
package store

import "errors"

// ErrNotFound indicates no token is currently persisted.
var ErrNotFound = errors.New("store: token not found")

// TokenStore persists one opaque auth token under a fixed key.
//
// Set and Remove are single atomic operations; readers never observe a
// partially written token.
type TokenStore interface {
	// Get returns the persisted token, or ErrNotFound.
	Get() (string, error)

	// Set persists the token, replacing any previous value.
	Set(token string) error

	// Remove deletes the persisted token. Removing an absent token is
	// not an error.
	Remove() error

	// Close releases any underlying resources.
	Close() error
}
