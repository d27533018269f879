// Package auth implements the authentication operations of the fittrack
// API: login, logout and session verification.
//
// The service validates inputs, delegates to the request layer and
// enforces the response contract. It never swallows errors; converting
// failures into visible state is the session store's job.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/fittrackhq/fittrack-go/internal/api"
	"github.com/fittrackhq/fittrack-go/internal/domain"
)

// API endpoints, relative to the client base URL.
const (
	loginEndpoint   = "/auth/login"
	logoutEndpoint  = "/auth/logout"
	sessionEndpoint = "/auth/session"
)

// Requester is the slice of the request layer the service needs.
type Requester interface {
	Request(ctx context.Context, endpoint, method string, body any, headers map[string]string) (json.RawMessage, error)
}

// Service performs authentication calls against the fittrack API.
type Service struct {
	client Requester
}

// NewService creates an auth service on top of the request layer.
func NewService(client Requester) *Service {
	return &Service{client: client}
}

// ValidateCredentials trims and validates login credentials. Username and
// password must both be non-blank after trimming and at most
// domain.MaxCredentialLength characters.
func ValidateCredentials(creds domain.Credentials) (domain.Credentials, error) {
	username := strings.TrimSpace(creds.Username)
	password := strings.TrimSpace(creds.Password)

	if username == "" {
		return domain.Credentials{}, domain.NewValidationError("username cannot be empty")
	}
	if password == "" {
		return domain.Credentials{}, domain.NewValidationError("password cannot be empty")
	}
	// The limit counts characters, not bytes.
	if utf8.RuneCountInString(username) > domain.MaxCredentialLength {
		return domain.Credentials{}, domain.NewValidationError(
			fmt.Sprintf("username cannot exceed %d characters", domain.MaxCredentialLength))
	}
	if utf8.RuneCountInString(password) > domain.MaxCredentialLength {
		return domain.Credentials{}, domain.NewValidationError(
			fmt.Sprintf("password cannot exceed %d characters", domain.MaxCredentialLength))
	}

	return domain.Credentials{Username: username, Password: password}, nil
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User  *domain.User
	Token string
}

// Login validates credentials and POSTs them to the login endpoint. The
// server must answer with both a user record and a token; a 2xx response
// missing either fails with a protocol error.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error) {
	validated, err := ValidateCredentials(creds)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.Request(ctx, loginEndpoint, http.MethodPost, validated, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		User  json.RawMessage `json:"user"`
		Token string          `json:"token"`
	}
	if err := api.Decode(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.User) == 0 || string(payload.User) == "null" || payload.Token == "" {
		return nil, domain.NewProtocolError("login failed: invalid response format from server")
	}

	user, err := decodeUser(payload.User)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: payload.Token}, nil
}

// Logout POSTs to the logout endpoint. Any request failure propagates.
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.client.Request(ctx, logoutEndpoint, http.MethodPost, nil, nil)
	return err
}

// GetUserSession verifies a token against the session endpoint and
// returns the server's user record. A blank token fails with a
// validation error before any I/O; a 2xx response without a user record
// fails with a protocol error.
func (s *Service) GetUserSession(ctx context.Context, token string) (*domain.User, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, domain.NewValidationError("token cannot be empty")
	}

	headers := map[string]string{"Authorization": "Bearer " + trimmed}
	raw, err := s.client.Request(ctx, sessionEndpoint, http.MethodGet, nil, headers)
	if err != nil {
		return nil, err
	}

	var payload struct {
		User json.RawMessage `json:"user"`
	}
	if err := api.Decode(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.User) == 0 || string(payload.User) == "null" {
		return nil, domain.NewProtocolError("session validation failed: invalid response format from server")
	}

	return decodeUser(payload.User)
}

// decodeUser parses a user record, keeping the raw form for display.
func decodeUser(raw json.RawMessage) (*domain.User, error) {
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, domain.NewProtocolError(fmt.Sprintf("malformed user record: %v", err))
	}
	user.Raw = raw
	return &user, nil
}
