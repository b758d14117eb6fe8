package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrSessionExpired is returned when a 401 could not be recovered by a
// token refresh. The store is cleared before it is returned; the caller
// must log in again.
var ErrSessionExpired = errors.New("client: session expired")

const refreshPath = "/api/v1/token/refresh/"

// authTransport annotates outgoing requests with the bearer access token
// and transparently retries exactly once after refreshing an expired one.
type authTransport struct {
	base    http.RoundTripper
	store   TokenStore
	baseURL string
}

func newAuthTransport(base http.RoundTripper, store TokenStore, baseURL string) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

// RoundTrip implements http.RoundTripper. Requests to the refresh endpoint
// pass through untouched so a failed refresh can never recurse.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.TrimRight(req.URL.Path, "/") == strings.TrimRight(refreshPath, "/") {
		return t.base.RoundTrip(req)
	}

	if access := t.store.Access(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	// Buffer the body so the request can be replayed after a refresh.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("client: read request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	refresh := t.store.Refresh()
	if refresh == "" {
		return resp, nil
	}
	resp.Body.Close()

	access, err := t.exchangeRefresh(req, refresh)
	if err != nil {
		t.store.Clear()
		return nil, ErrSessionExpired
	}
	t.store.SetAccess(access)

	retry := req.Clone(req.Context())
	retry.Header.Set("Authorization", "Bearer "+access)
	if body != nil {
		retry.Body = io.NopCloser(bytes.NewReader(body))
	}
	return t.base.RoundTrip(retry)
}

// exchangeRefresh posts the refresh token and returns the new access token.
func (t *authTransport) exchangeRefresh(orig *http.Request, refresh string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", fmt.Errorf("client: marshal refresh payload: %w", err)
	}

	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, t.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("client: build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("client: refresh request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("client: refresh rejected with status %d", resp.StatusCode)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("client: decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", errors.New("client: refresh response missing access token")
	}
	return out.Access, nil
}
