// Package api provides HTTP communication with the fittrack server.
package api

import (
	"context"
	"encoding/json"
)

// TokenSource supplies the current auth token. An empty string means no
// token is held.
type TokenSource interface {
	Token() string
}

// AuthedClient wraps a Client with the caller's bearer credential for
// protected-resource calls.
//
// It never pre-validates token presence and never mutates session state:
// a 401 surfaces to the caller as an ordinary API error, and deciding to
// re-authenticate is the caller's job.
type AuthedClient struct {
	client *Client
	tokens TokenSource
}

// NewAuthedClient creates an authenticated fetch helper.
func NewAuthedClient(client *Client, tokens TokenSource) *AuthedClient {
	return &AuthedClient{client: client, tokens: tokens}
}

// FetchWithAuth issues a request with the current token attached as a
// bearer credential. With no token held the call still goes out, just
// without the Authorization header.
func (a *AuthedClient) FetchWithAuth(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	var headers map[string]string
	if token := a.tokens.Token(); token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}
	return a.client.Request(ctx, endpoint, method, body, headers)
}
