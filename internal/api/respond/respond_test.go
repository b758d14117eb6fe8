package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorShapes(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter)
		want  string
	}{
		{"detail", func(w http.ResponseWriter) { Detail(w, 401, "nope") }, `{"detail":"nope"}`},
		{"error", func(w http.ResponseWriter) { Error(w, 500, "boom") }, `{"error":"boom"}`},
		{"field", func(w http.ResponseWriter) { FieldError(w, 400, "email", "bad") }, `{"email":["bad"]}`},
		{"non-field", func(w http.ResponseWriter) { NonFieldError(w, 400, "taken") }, `{"non_field_errors":["taken"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("content type %q", ct)
			}
			var got, want any
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			_ = json.Unmarshal([]byte(tt.want), &want)
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(want)
			if string(gotJSON) != string(wantJSON) {
				t.Fatalf("body %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestNewPageLinks(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/mood/?page=2&page_size=10", nil)
	p := NewPage(r, 25, 2, 10, []int{})
	if p.Next == nil || p.Previous == nil {
		t.Fatalf("page %+v, want both links on a middle page", p)
	}

	first := NewPage(r, 25, 1, 10, []int{})
	if first.Previous != nil {
		t.Fatal("first page should have no previous link")
	}
	last := NewPage(r, 25, 3, 10, []int{})
	if last.Next != nil {
		t.Fatal("last page should have no next link")
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 10},
		{"?page=3&page_size=20", 3, 20},
		{"?page=-1", 1, 10},
		{"?page_size=9999", 1, 100},
		{"?page=abc", 1, 10},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
		page, pageSize := PageParams(r, 10, 100)
		if page != tt.page || pageSize != tt.pageSize {
			t.Errorf("%q: got %d/%d, want %d/%d", tt.query, page, pageSize, tt.page, tt.pageSize)
		}
	}
}
