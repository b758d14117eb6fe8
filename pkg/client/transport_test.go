package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// apiStub serves a profile endpoint that rejects stale access tokens and a
// refresh endpoint that exchanges a known refresh token.
type apiStub struct {
	validAccess   string
	validRefresh  string
	refreshCalls  atomic.Int32
	profileCalls  atomic.Int32
	rejectRefresh bool
	rejectProfile bool
}

func (s *apiStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)
		var in struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if s.rejectRefresh || in.Refresh != s.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": s.validAccess})
	})
	mux.HandleFunc("/api/v1/auth/profile/", func(w http.ResponseWriter, r *http.Request) {
		s.profileCalls.Add(1)
		if s.rejectProfile || r.Header.Get("Authorization") != "Bearer "+s.validAccess {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "a@b.co"})
	})
	return mux
}

func TestRefreshRetriesOnce(t *testing.T) {
	stub := &apiStub{validAccess: "fresh", validRefresh: "refresh-token"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().SetPair("stale", "refresh-token")

	u, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if u.Email != "a@b.co" {
		t.Fatalf("unexpected user %+v", u)
	}
	if got := stub.refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
	if got := stub.profileCalls.Load(); got != 2 {
		t.Fatalf("profile calls = %d, want original plus one replay", got)
	}
	if c.Tokens().Access() != "fresh" {
		t.Fatalf("access token not persisted: %q", c.Tokens().Access())
	}
}

func TestRefreshFailureExpiresSession(t *testing.T) {
	stub := &apiStub{validAccess: "fresh", validRefresh: "refresh-token", rejectRefresh: true}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().SetPair("stale", "refresh-token")

	_, err := c.Profile(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if c.Tokens().Access() != "" || c.Tokens().Refresh() != "" {
		t.Fatal("store should be cleared after a failed refresh")
	}
	if got := stub.refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want exactly 1", got)
	}
}

func TestReplayedFailureDoesNotRefreshAgain(t *testing.T) {
	stub := &apiStub{validAccess: "fresh", validRefresh: "refresh-token", rejectProfile: true}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().SetPair("stale", "refresh-token")

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the second 401 to propagate, got %v", err)
	}
	if got := stub.refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want exactly 1", got)
	}
	if got := stub.profileCalls.Load(); got != 2 {
		t.Fatalf("profile calls = %d, want original plus one replay", got)
	}
}

func TestNoRefreshWithoutStoredToken(t *testing.T) {
	stub := &apiStub{validAccess: "fresh", validRefresh: "refresh-token"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().SetAccess("stale")

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if got := stub.refreshCalls.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0", got)
	}
}

func TestValidTokenPassesThrough(t *testing.T) {
	stub := &apiStub{validAccess: "fresh", validRefresh: "refresh-token"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().SetPair("fresh", "refresh-token")

	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got := stub.refreshCalls.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0", got)
	}
	if got := stub.profileCalls.Load(); got != 1 {
		t.Fatalf("profile calls = %d, want 1", got)
	}
}
