package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fittrackhq/fittrack-go/internal/domain"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestAuthedClient_AttachesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-42" {
			t.Errorf("Authorization = %q, want Bearer tok-42", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	authed := NewAuthedClient(NewClient(server.URL), staticTokens("tok-42"))
	if _, err := authed.FetchWithAuth(context.Background(), "/user/stats", "GET", nil); err != nil {
		t.Fatalf("FetchWithAuth failed: %v", err)
	}
}

func TestAuthedClient_NoToken_StillCalls(t *testing.T) {
	// Without a token the call still goes out, header omitted; the
	// server's verdict is surfaced unchanged.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"missing credentials"}`))
	}))
	defer server.Close()

	authed := NewAuthedClient(NewClient(server.URL), staticTokens(""))
	_, err := authed.FetchWithAuth(context.Background(), "/user/goals", "GET", nil)

	if !domain.IsKind(err, domain.KindAPI) {
		t.Fatalf("error kind = %v, want api", domain.KindOf(err))
	}
}
