package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fittrackhq/fittrack-go/internal/api"
	"github.com/fittrackhq/fittrack-go/internal/domain"
)

func newService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewService(api.NewClient(server.URL)), server
}

func TestValidateCredentials(t *testing.T) {
	long := strings.Repeat("x", domain.MaxCredentialLength+1)
	longRunes := strings.Repeat("ä", domain.MaxCredentialLength+1)
	multibyteOK := strings.Repeat("ä", 30) // 60 bytes, 30 characters

	tests := []struct {
		name    string
		creds   domain.Credentials
		want    domain.Credentials
		wantMsg string
	}{
		{
			name:  "valid",
			creds: domain.Credentials{Username: "alice", Password: "secret"},
			want:  domain.Credentials{Username: "alice", Password: "secret"},
		},
		{
			name:  "trims whitespace",
			creds: domain.Credentials{Username: "  alice  ", Password: " secret "},
			want:  domain.Credentials{Username: "alice", Password: "secret"},
		},
		{
			name:    "empty username",
			creds:   domain.Credentials{Username: "   ", Password: "secret"},
			wantMsg: "username cannot be empty",
		},
		{
			name:    "empty password",
			creds:   domain.Credentials{Username: "alice", Password: ""},
			wantMsg: "password cannot be empty",
		},
		{
			name:    "username too long",
			creds:   domain.Credentials{Username: long, Password: "secret"},
			wantMsg: "username cannot exceed 50 characters",
		},
		{
			name:    "password too long",
			creds:   domain.Credentials{Username: "alice", Password: long},
			wantMsg: "password cannot exceed 50 characters",
		},
		{
			name:  "limit counts characters not bytes",
			creds: domain.Credentials{Username: "alice", Password: multibyteOK},
			want:  domain.Credentials{Username: "alice", Password: multibyteOK},
		},
		{
			name:    "multibyte username too long",
			creds:   domain.Credentials{Username: longRunes, Password: "secret"},
			wantMsg: "username cannot exceed 50 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCredentials(tt.creds)
			if tt.wantMsg != "" {
				if !domain.IsKind(err, domain.KindValidation) {
					t.Fatalf("error kind = %v, want validation", domain.KindOf(err))
				}
				if msg := domain.MessageOf(err); msg != tt.wantMsg {
					t.Errorf("message = %q, want %q", msg, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("credentials = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if creds.Username != "alice" {
			t.Errorf("username = %q, want alice (trimmed)", creds.Username)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": "u1", "username": "alice"},
			"token": "tok-1",
		})
	})

	result, err := svc.Login(context.Background(), domain.Credentials{Username: "alice ", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token != "tok-1" {
		t.Errorf("token = %q, want tok-1", result.Token)
	}
	if result.User == nil || result.User.Username != "alice" {
		t.Errorf("user = %+v, want alice", result.User)
	}
	if len(result.User.Raw) == 0 {
		t.Error("user raw record not preserved")
	}
}

func TestLogin_InvalidCredentials_NoRequest(t *testing.T) {
	called := false
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.Login(context.Background(), domain.Credentials{Username: "", Password: "secret"})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("error kind = %v, want validation", domain.KindOf(err))
	}
	if called {
		t.Error("request was issued despite invalid credentials")
	}
}

func TestLogin_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{"user":{"id":"u1","username":"alice"}}`},
		{"missing user", `{"token":"tok-1"}`},
		{"null user", `{"user":null,"token":"tok-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := svc.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret"})
			if !domain.IsKind(err, domain.KindProtocol) {
				t.Fatalf("error kind = %v, want protocol", domain.KindOf(err))
			}
			want := "login failed: invalid response format from server"
			if msg := domain.MessageOf(err); msg != want {
				t.Errorf("message = %q, want %q", msg, want)
			}
		})
	}
}

func TestLogin_ServerError(t *testing.T) {
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	})

	_, err := svc.Login(context.Background(), domain.Credentials{Username: "alice", Password: "wrong"})
	var clientErr *domain.ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error type = %T, want *domain.ClientError", err)
	}
	if clientErr.Kind != domain.KindAPI || clientErr.Status != http.StatusUnauthorized {
		t.Errorf("got kind=%v status=%d, want api/401", clientErr.Kind, clientErr.Status)
	}
}

func TestLogout(t *testing.T) {
	var gotPath, gotMethod string
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Write([]byte(`{}`))
	})

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if gotPath != "/auth/logout" || gotMethod != http.MethodPost {
		t.Errorf("got %s %s, want POST /auth/logout", gotMethod, gotPath)
	}
}

func TestGetUserSession(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization = %q, want Bearer tok-1", got)
			}
			w.Write([]byte(`{"user":{"id":"u1","username":"alice"}}`))
		})

		user, err := svc.GetUserSession(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("GetUserSession failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("username = %q, want alice", user.Username)
		}
	})

	t.Run("token trimmed before use", func(t *testing.T) {
		svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization = %q, want Bearer tok-1", got)
			}
			w.Write([]byte(`{"user":{"id":"u1","username":"alice"}}`))
		})

		if _, err := svc.GetUserSession(context.Background(), "  tok-1  "); err != nil {
			t.Fatalf("GetUserSession failed: %v", err)
		}
	})

	t.Run("blank token fails before any request", func(t *testing.T) {
		called := false
		svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := svc.GetUserSession(context.Background(), "   ")
		if !domain.IsKind(err, domain.KindValidation) {
			t.Fatalf("error kind = %v, want validation", domain.KindOf(err))
		}
		if msg := domain.MessageOf(err); msg != "token cannot be empty" {
			t.Errorf("message = %q", msg)
		}
		if called {
			t.Error("request was issued for blank token")
		}
	})

	t.Run("missing user record", func(t *testing.T) {
		svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		_, err := svc.GetUserSession(context.Background(), "tok-1")
		if !domain.IsKind(err, domain.KindProtocol) {
			t.Fatalf("error kind = %v, want protocol", domain.KindOf(err))
		}
		want := "session validation failed: invalid response format from server"
		if msg := domain.MessageOf(err); msg != want {
			t.Errorf("message = %q, want %q", msg, want)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"session expired"}`))
		})

		_, err := svc.GetUserSession(context.Background(), "tok-stale")
		var clientErr *domain.ClientError
		if !errors.As(err, &clientErr) {
			t.Fatalf("error type = %T, want *domain.ClientError", err)
		}
		if clientErr.Status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", clientErr.Status)
		}
	})
}
