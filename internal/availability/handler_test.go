package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name   string
		in     createInput
		fields []string
	}{
		{"valid", createInput{"Monday", "09:00:00", "12:00:00"}, nil},
		{"bad day", createInput{"Funday", "09:00:00", "12:00:00"}, []string{"day_of_week"}},
		{"bad start", createInput{"Monday", "9am", "12:00:00"}, []string{"start_time"}},
		{"bad end", createInput{"Monday", "09:00:00", "noon"}, []string{"end_time"}},
		{"inverted", createInput{"Monday", "12:00:00", "09:00:00"}, []string{"non_field_errors"}},
		{"equal", createInput{"Monday", "09:00:00", "09:00:00"}, []string{"non_field_errors"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validateWindow(tt.in)
			if len(fields) != len(tt.fields) {
				t.Fatalf("fields %v, want keys %v", fields, tt.fields)
			}
			for _, key := range tt.fields {
				if len(fields[key]) == 0 {
					t.Fatalf("missing error for %q in %v", key, fields)
				}
			}
		})
	}
}

func TestBookableDatesEndpoint(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	therapistID := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "day_of_week", "start_time", "end_time"}).
		AddRow(uuid.New().String(), "Monday", "09:00:00", "12:00:00")
	mock.ExpectQuery("FROM availability_windows").
		WithArgs(therapistID).
		WillReturnRows(rows)

	h := NewHandler(NewRepository(mock), 14, nil)
	h.now = func() time.Time { return time.Date(2024, 5, 28, 10, 0, 0, 0, time.UTC) } // Tuesday

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", therapistID.String())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/therapists/availability/"+therapistID.String()+"/dates/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.BookableDates(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Dates []struct {
			Date  string `json:"date"`
			Label string `json:"label"`
		} `json:"dates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Dates) != 2 {
		t.Fatalf("dates %v, want the two Mondays in the 14-day horizon", body.Dates)
	}
	if body.Dates[0].Date != "2024-06-03" || body.Dates[1].Date != "2024-06-10" {
		t.Fatalf("dates %v", body.Dates)
	}
}

func TestCreateRejectsInvalidWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	h := NewHandler(NewRepository(mock), 14, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/therapists/availability/create/",
		strings.NewReader(`{"day_of_week":"Monday","start_time":"12:00:00","end_time":"09:00:00"}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), uuid.New(), "therapist"))

	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "non_field_errors") {
		t.Fatalf("body %s", w.Body.String())
	}
}
