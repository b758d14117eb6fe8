package client

import "testing"

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain string body", `"Server exploded"`, "Server exploded"},
		{"non_field_errors first", `{"non_field_errors": ["Slot already booked."], "detail": "ignored"}`, "Slot already booked."},
		{"detail", `{"detail": "Authentication credentials were not provided."}`, "Authentication credentials were not provided."},
		{"error", `{"error": "internal server error"}`, "internal server error"},
		{"detail beats error", `{"error": "generic", "detail": "specific"}`, "specific"},
		{"first field array", `{"mood_score": ["Mood score must be between 1 and 5."]}`, "mood score: Mood score must be between 1 and 5."},
		{"empty object", `{}`, genericErrorMessage},
		{"not json", `<html>`, genericErrorMessage},
		{"detail not a string", `{"detail": 42}`, genericErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractMessage([]byte(tt.body)); got != tt.want {
				t.Fatalf("extractMessage(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
