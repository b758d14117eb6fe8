// Package respond centralizes the JSON response and error payload shapes of
// the API. Error bodies follow the conventions the SDK's extractor table
// probes for: {"detail": ...}, {"error": ...}, {"non_field_errors": [...]},
// and per-field {"field": [...]} maps.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Detail writes {"detail": msg}, the shape used for auth and not-found
// conditions.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"detail": msg})
}

// Error writes {"error": msg}, the generic failure shape.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// FieldErrors writes a per-field validation error map.
func FieldErrors(w http.ResponseWriter, status int, fields map[string][]string) {
	JSON(w, status, fields)
}

// FieldError writes a single-field validation error.
func FieldError(w http.ResponseWriter, status int, field, msg string) {
	FieldErrors(w, status, map[string][]string{field: {msg}})
}

// NonFieldError writes {"non_field_errors": [msg]}, used for validation
// failures not tied to one field (e.g. a slot already taken).
func NonFieldError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string][]string{"non_field_errors": {msg}})
}

// Page is the paginated list envelope.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewPage builds the envelope with next/previous links relative to the
// request URL.
func NewPage(r *http.Request, count, page, pageSize int, results any) Page {
	p := Page{Count: count, Results: results}
	if page*pageSize < count {
		next := pageLink(r, page+1, pageSize)
		p.Next = &next
	}
	if page > 1 {
		prev := pageLink(r, page-1, pageSize)
		p.Previous = &prev
	}
	return p
}

func pageLink(r *http.Request, page, pageSize int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("page_size", fmt.Sprintf("%d", pageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

// PageParams extracts page/page_size query parameters with defaults and a
// server-side cap.
func PageParams(r *http.Request, defaultSize, maxSize int) (page, pageSize int) {
	page = intQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = intQuery(r, "page_size", defaultSize)
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

func intQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}
