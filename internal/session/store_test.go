package session

import (
	"context"
	"errors"
	"testing"

	"github.com/fittrackhq/fittrack-go/internal/auth"
	"github.com/fittrackhq/fittrack-go/internal/domain"
	"github.com/fittrackhq/fittrack-go/internal/store"
)

// fakeAuth scripts the auth service per call.
type fakeAuth struct {
	loginResult *auth.LoginResult
	loginErr    error
	logoutErr   error
	sessionUser *domain.User
	sessionErr  error

	loginCalls   int
	sessionCalls int
	gotToken     string
}

func (f *fakeAuth) Login(ctx context.Context, creds domain.Credentials) (*auth.LoginResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	return f.logoutErr
}

func (f *fakeAuth) GetUserSession(ctx context.Context, tok string) (*domain.User, error) {
	f.sessionCalls++
	f.gotToken = tok
	return f.sessionUser, f.sessionErr
}

func newTestStore(a *fakeAuth) (*Store, store.TokenStore) {
	tokens := store.NewMemStore()
	return NewStore(a, tokens, nil), tokens
}

func TestLogin_Success(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice"}
	s, tokens := newTestStore(&fakeAuth{
		loginResult: &auth.LoginResult{User: user, Token: "tok-1"},
	})

	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})

	state := s.Snapshot()
	if !state.IsAuthenticated() {
		t.Fatal("expected authenticated state after login")
	}
	if state.User != user || state.Token != "tok-1" {
		t.Errorf("state = %+v, want user + tok-1", state)
	}
	if state.Loading {
		t.Error("Loading still true after login")
	}
	if state.Error != nil {
		t.Errorf("Error = %+v, want nil", state.Error)
	}

	// A visible user implies a persisted token.
	got, err := tokens.Get()
	if err != nil || got != "tok-1" {
		t.Errorf("persisted token = %q, %v; want tok-1", got, err)
	}
}

func TestLogin_Failure_KeepsUserSetsError(t *testing.T) {
	s, tokens := newTestStore(&fakeAuth{
		loginErr: domain.NewAPIError(401, nil, "bad credentials"),
	})

	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "wrong"})

	state := s.Snapshot()
	if state.IsAuthenticated() {
		t.Error("authenticated after failed login")
	}
	if state.Error == nil || state.Error.Message == "" {
		t.Fatal("expected a non-empty error message")
	}
	if state.Error.Status != 401 {
		t.Errorf("error status = %d, want 401", state.Error.Status)
	}
	if state.Loading {
		t.Error("Loading still true after failure")
	}
	if _, err := tokens.Get(); !errors.Is(err, store.ErrNotFound) {
		t.Error("token persisted despite failed login")
	}
}

func TestLogin_FallbackMessage(t *testing.T) {
	s, _ := newTestStore(&fakeAuth{loginErr: errors.New("")})

	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})

	state := s.Snapshot()
	if state.Error == nil || state.Error.Message != "Login failed" {
		t.Errorf("error = %+v, want fallback message", state.Error)
	}
}

func TestLogin_ClearsPreviousError(t *testing.T) {
	fake := &fakeAuth{loginErr: domain.NewNetworkError(errors.New("refused"))}
	s, _ := newTestStore(fake)

	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})
	if s.Snapshot().Error == nil {
		t.Fatal("expected error after first login")
	}

	fake.loginErr = nil
	fake.loginResult = &auth.LoginResult{User: &domain.User{ID: "u1"}, Token: "tok-1"}
	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})
	if got := s.Snapshot().Error; got != nil {
		t.Errorf("Error = %+v, want cleared", got)
	}
}

func TestLogout_ClearsState(t *testing.T) {
	user := &domain.User{ID: "u1"}
	fake := &fakeAuth{loginResult: &auth.LoginResult{User: user, Token: "tok-1"}}
	s, tokens := newTestStore(fake)
	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})

	s.Logout(context.Background())

	state := s.Snapshot()
	if state.IsAuthenticated() || state.Token != "" {
		t.Errorf("state = %+v, want anonymous", state)
	}
	if _, err := tokens.Get(); !errors.Is(err, store.ErrNotFound) {
		t.Error("token still persisted after logout")
	}
}

func TestLogout_Failure_SetsError(t *testing.T) {
	user := &domain.User{ID: "u1"}
	fake := &fakeAuth{
		loginResult: &auth.LoginResult{User: user, Token: "tok-1"},
		logoutErr:   domain.NewNetworkError(errors.New("connection refused")),
	}
	s, _ := newTestStore(fake)
	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})

	s.Logout(context.Background())

	state := s.Snapshot()
	if state.Error == nil {
		t.Fatal("expected error after failed logout")
	}
	// The server call failed, so local state is untouched.
	if !state.IsAuthenticated() {
		t.Error("user cleared despite failed logout")
	}
	if state.Loading {
		t.Error("Loading still true")
	}
}

func TestCheckSession_NoToken_ShortCircuits(t *testing.T) {
	fake := &fakeAuth{loginErr: errors.New("seed failure")}
	s, _ := newTestStore(fake)

	// Seed an error so we can observe it surviving the short circuit.
	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})
	before := s.Snapshot()
	if before.Error == nil {
		t.Fatal("expected seeded error")
	}

	s.CheckSession(context.Background())

	state := s.Snapshot()
	if fake.sessionCalls != 0 {
		t.Error("session endpoint called without a token")
	}
	if state.IsAuthenticated() {
		t.Error("authenticated without a token")
	}
	if state.Error == nil || state.Error.Message != before.Error.Message {
		t.Errorf("Error = %+v, want untouched %+v", state.Error, before.Error)
	}
	if state.Loading {
		t.Error("Loading flipped during short circuit")
	}
}

func TestCheckSession_ValidToken(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice"}
	fake := &fakeAuth{sessionUser: user}
	s, tokens := newTestStore(fake)
	tokens.Set("tok-1")

	s.CheckSession(context.Background())

	state := s.Snapshot()
	if state.User != user || state.Token != "tok-1" {
		t.Errorf("state = %+v, want restored session", state)
	}
	if fake.gotToken != "tok-1" {
		t.Errorf("verified token = %q, want tok-1", fake.gotToken)
	}
	if state.Loading || state.Error != nil {
		t.Errorf("loading=%v error=%+v after success", state.Loading, state.Error)
	}
}

func TestCheckSession_InvalidToken_ClearsEverything(t *testing.T) {
	fake := &fakeAuth{sessionErr: domain.NewAPIError(401, nil, "session expired")}
	s, tokens := newTestStore(fake)
	tokens.Set("tok-stale")

	s.CheckSession(context.Background())

	state := s.Snapshot()
	if state.IsAuthenticated() || state.Token != "" {
		t.Errorf("state = %+v, want anonymous", state)
	}
	if state.Error == nil || state.Error.Message == "" {
		t.Fatal("expected a non-empty error message")
	}
	// The stale token must not outlive the anonymous session.
	if _, err := tokens.Get(); !errors.Is(err, store.ErrNotFound) {
		t.Error("stale token still persisted")
	}
}

func TestCheckSession_NoUserRecord_ClearsWithoutError(t *testing.T) {
	fake := &fakeAuth{} // session answers nil user, nil error
	s, tokens := newTestStore(fake)
	tokens.Set("tok-1")

	s.CheckSession(context.Background())

	state := s.Snapshot()
	if state.IsAuthenticated() {
		t.Error("authenticated without a user record")
	}
	if state.Error != nil {
		t.Errorf("Error = %+v, want nil for invalid-but-answered session", state.Error)
	}
	if _, err := tokens.Get(); !errors.Is(err, store.ErrNotFound) {
		t.Error("token still persisted")
	}
}

func TestCheckSession_Idempotent(t *testing.T) {
	user := &domain.User{ID: "u1"}
	fake := &fakeAuth{sessionUser: user}
	s, tokens := newTestStore(fake)
	tokens.Set("tok-1")

	s.CheckSession(context.Background())
	first := s.Snapshot()
	s.CheckSession(context.Background())
	second := s.Snapshot()

	if first.User != second.User || first.Token != second.Token {
		t.Errorf("repeated check changed state: %+v vs %+v", first, second)
	}
	if fake.sessionCalls != 2 {
		t.Errorf("sessionCalls = %d, want 2", fake.sessionCalls)
	}
}

func TestRoundTrip_LoginCheckLogout(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice"}
	fake := &fakeAuth{
		loginResult: &auth.LoginResult{User: user, Token: "tok-1"},
		sessionUser: user,
	}
	s, _ := newTestStore(fake)

	s.Login(context.Background(), domain.Credentials{Username: "alice ", Password: "secret"})
	if !s.IsAuthenticated() {
		t.Fatal("not authenticated after login")
	}

	s.CheckSession(context.Background())
	if !s.IsAuthenticated() {
		t.Fatal("not authenticated after session check")
	}
	if fake.gotToken != "tok-1" {
		t.Errorf("verified token = %q, want issued token", fake.gotToken)
	}

	s.Logout(context.Background())
	if s.IsAuthenticated() {
		t.Fatal("still authenticated after logout")
	}

	// A later check finds no token and stays anonymous.
	calls := fake.sessionCalls
	s.CheckSession(context.Background())
	if fake.sessionCalls != calls {
		t.Error("session endpoint called after logout cleared the token")
	}
}

func TestNewStore_HydratesPersistedToken(t *testing.T) {
	tokens := store.NewMemStore()
	tokens.Set("tok-1")

	s := NewStore(&fakeAuth{}, tokens, nil)

	// The credential is available to authenticated fetches immediately,
	// but the user stays unverified.
	if got := s.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, want persisted token", got)
	}
	if s.IsAuthenticated() {
		t.Error("authenticated before the token was verified")
	}

	state := s.Snapshot()
	if state.Loading || state.Error != nil {
		t.Errorf("loading=%v error=%+v after construction", state.Loading, state.Error)
	}
}

func TestToken_ReflectsState(t *testing.T) {
	fake := &fakeAuth{loginResult: &auth.LoginResult{User: &domain.User{ID: "u1"}, Token: "tok-1"}}
	s, _ := newTestStore(fake)

	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q before login, want empty", got)
	}
	s.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})
	if got := s.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, want tok-1", got)
	}
}
