package recommendations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/internal/mood"
)

type fakeMoodSource struct {
	entries []mood.Entry
}

func (f *fakeMoodSource) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]mood.Entry, error) {
	return f.entries, nil
}

func authedRequest(t *testing.T) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/", nil)
	return r.WithContext(middleware.WithIdentity(r.Context(), uuid.New(), "patient"))
}

func TestListNoEntries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	h := NewHandler(NewRepository(mock), &fakeMoodSource{}, nil)
	w := httptest.NewRecorder()
	h.List(w, authedRequest(t))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		AverageMood *float64 `json:"average_mood"`
		Message     string   `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AverageMood != nil {
		t.Fatalf("expected no average, got %v", *body.AverageMood)
	}
	if body.Message == "" {
		t.Fatal("expected a prompt message for users with no entries")
	}
}

func TestListPicksCategoryFromAverage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "category", "title", "description"}).
		AddRow(uuid.New(), CategoryUplifting, "Take a short walk", "Sunlight and movement lift low moods.")
	mock.ExpectQuery("FROM recommendations").
		WithArgs(CategoryUplifting).
		WillReturnRows(rows)

	moods := &fakeMoodSource{entries: []mood.Entry{
		{MoodScore: 1}, {MoodScore: 2}, {MoodScore: 2},
	}}
	h := NewHandler(NewRepository(mock), moods, nil)
	w := httptest.NewRecorder()
	h.List(w, authedRequest(t))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		AverageMood     *float64 `json:"average_mood"`
		Category        string   `json:"category"`
		Recommendations []Item   `json:"recommendations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AverageMood == nil || *body.AverageMood != 1.7 {
		t.Fatalf("unexpected average %v", body.AverageMood)
	}
	if body.Category != CategoryUplifting {
		t.Fatalf("unexpected category %q", body.Category)
	}
	if len(body.Recommendations) != 1 {
		t.Fatalf("unexpected recommendations %v", body.Recommendations)
	}
}
