// Package session holds the client's authentication state.
//
// One Store exists per running client. It owns the in-memory session
// (user, token, loading, error) and is the sole reader and writer of the
// durable token store. It is also the first layer that catches errors and
// turns them into visible state instead of rethrowing, so callers never
// wrap its operations in error handling of their own.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/fittrackhq/fittrack-go/internal/auth"
	"github.com/fittrackhq/fittrack-go/internal/domain"
	"github.com/fittrackhq/fittrack-go/internal/store"
	"github.com/fittrackhq/fittrack-go/internal/telemetry/logger"
	"github.com/fittrackhq/fittrack-go/pkg/token"
)

// Fallback messages for errors that carry none of their own.
const (
	loginFailedMessage   = "Login failed"
	logoutFailedMessage  = "Logout failed"
	sessionFailedMessage = "Session check failed"
)

// Authenticator is the slice of the auth service the store needs.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (*auth.LoginResult, error)
	Logout(ctx context.Context) error
	GetUserSession(ctx context.Context, tok string) (*domain.User, error)
}

// State is a point-in-time copy of the session.
type State struct {
	User    *domain.User
	Token   string
	Loading bool
	Error   *domain.ErrorInfo
}

// IsAuthenticated derives the auth status from user presence. It is
// never stored, so it cannot desync from User.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Store is the session state store.
//
// The mutex guards individual state reads and writes, not whole
// operations: two concurrent Login calls may interleave and the state
// reflects whichever finishes last. Operations cannot be cancelled once
// their network call is in flight beyond what the context provides.
type Store struct {
	auth   Authenticator
	tokens store.TokenStore
	log    logger.Logger

	mu    sync.Mutex
	state State
}

// NewStore creates a session store. The in-memory token is hydrated
// from durable storage so authenticated fetches carry the persisted
// credential without a prior session check; the user stays nil until
// the token is verified against the server.
func NewStore(auth Authenticator, tokens store.TokenStore, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{auth: auth, tokens: tokens, log: log}
	if tok, err := tokens.Get(); err == nil {
		s.state.Token = tok
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("read token failed", "error", err)
	}
	return s
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a user is present.
func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

// Token returns the in-memory token, satisfying api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Login authenticates with the server and persists the issued token.
//
// On failure the user stays as it was and Error carries the message;
// Loading is reset on every exit path.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) {
	s.begin()
	defer s.finish()

	result, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.setError(err, loginFailedMessage)
		return
	}

	// Persist before exposing the user: a visible user implies a
	// persisted token.
	if err := s.tokens.Set(result.Token); err != nil {
		s.log.Error("persist token failed", "error", err)
		s.setError(err, loginFailedMessage)
		return
	}

	s.mu.Lock()
	s.state.User = result.User
	s.state.Token = result.Token
	s.state.Error = nil
	s.mu.Unlock()

	s.log.Info("login succeeded",
		"user_id", result.User.ID,
		"token_fp", token.Fingerprint(result.Token))
}

// Logout ends the server session and clears local state.
func (s *Store) Logout(ctx context.Context) {
	s.begin()
	defer s.finish()

	if err := s.auth.Logout(ctx); err != nil {
		s.setError(err, logoutFailedMessage)
		return
	}

	if err := s.tokens.Remove(); err != nil {
		s.log.Error("remove token failed", "error", err)
	}

	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.mu.Unlock()

	s.log.Info("logout succeeded")
}

// CheckSession verifies the persisted token against the server.
//
// A missing token is not an error: the store goes anonymous and returns
// without touching Loading or Error. An invalid token is cleared from
// durable storage so no orphaned token outlives an anonymous session.
func (s *Store) CheckSession(ctx context.Context) {
	tok, err := s.tokens.Get()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error("read token failed", "error", err)
		}
		s.mu.Lock()
		s.state.User = nil
		s.state.Token = ""
		s.mu.Unlock()
		return
	}

	s.begin()
	defer s.finish()

	user, err := s.auth.GetUserSession(ctx, tok)
	if err != nil {
		s.clearToken()
		s.mu.Lock()
		s.state.User = nil
		s.state.Token = ""
		s.mu.Unlock()
		s.setError(err, sessionFailedMessage)
		return
	}

	if user == nil {
		// Server answered but issued no user record: not an error,
		// just an invalid session.
		s.clearToken()
		s.mu.Lock()
		s.state.User = nil
		s.state.Token = ""
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.state.User = user
	s.state.Token = tok
	s.mu.Unlock()

	s.log.Debug("session verified",
		"user_id", user.ID,
		"token_fp", token.Fingerprint(tok))
}

// Close releases the underlying token store.
func (s *Store) Close() error {
	return s.tokens.Close()
}

// begin marks an operation in flight and clears the previous error.
func (s *Store) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = nil
	s.mu.Unlock()
}

// finish resets Loading. It runs deferred so every exit path, including
// panics unwinding through an operation, restores the invariant.
func (s *Store) finish() {
	s.mu.Lock()
	s.state.Loading = false
	s.mu.Unlock()
}

func (s *Store) setError(err error, fallback string) {
	info := domain.InfoFromError(err, fallback)
	s.mu.Lock()
	s.state.Error = info
	s.mu.Unlock()
	s.log.Warn("operation failed", "error", info.Message)
}

func (s *Store) clearToken() {
	if err := s.tokens.Remove(); err != nil {
		s.log.Error("remove token failed", "error", err)
	}
}
