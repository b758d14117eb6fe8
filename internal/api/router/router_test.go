package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/riddhima-gkmit/mindease-platform/internal/appointments"
	"github.com/riddhima-gkmit/mindease-platform/internal/auth"
	"github.com/riddhima-gkmit/mindease-platform/internal/availability"
	"github.com/riddhima-gkmit/mindease-platform/internal/mood"
	"github.com/riddhima-gkmit/mindease-platform/internal/recommendations"
	"github.com/riddhima-gkmit/mindease-platform/internal/therapists"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.Tokens) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)

	tokens := auth.NewTokens("test-secret", 15*time.Minute, 24*time.Hour)
	authRepo := auth.NewRepository(mock)
	authService := auth.NewService(authRepo, tokens, nil, "http://localhost:8080", nil)

	moodRepo := mood.NewRepository(mock)
	availRepo := availability.NewRepository(mock)
	apptRepo := appointments.NewRepository(mock)
	apptCache := appointments.NewBookedSlotsCache(apptRepo, nil, time.Minute, nil)
	apptService := appointments.NewService(apptRepo, availRepo, apptCache, nil, nil)

	return New(&Config{
		Tokens:            tokens,
		AuthHandler:       auth.NewHandler(authService, nil, nil),
		MoodHandler:       mood.NewHandler(moodRepo, nil, nil),
		TherapistsHandler: therapists.NewHandler(therapists.NewRepository(mock), nil),
		Availability:      availability.NewHandler(availRepo, 14, nil),
		Appointments:      appointments.NewHandler(apptService, nil, nil),
		Recommendations:   recommendations.NewHandler(recommendations.NewRepository(mock), moodRepo, nil),
	}), tokens
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)
	paths := []string{
		"/api/v1/mood/",
		"/api/v1/appointments/",
		"/api/v1/recommendations/",
		"/api/v1/auth/profile/",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "detail") {
			t.Errorf("%s: body %s", path, w.Body.String())
		}
	}
}

func TestTherapistRoutesRejectPatients(t *testing.T) {
	r, tokens := newTestRouter(t)
	access, err := tokens.IssueAccess(uuid.New(), auth.RolePatient)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/therapists/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
}

func TestTrailingSlashOptional(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, path := range []string{"/api/v1/auth/login", "/api/v1/auth/login/"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("not json"))
		r.ServeHTTP(w, req)
		if w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed {
			t.Errorf("%s: routing failed with %d", path, w.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}
