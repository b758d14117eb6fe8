package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterInputValidate(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"valid", RegisterInput{Password: "secret12", ConfirmPassword: "secret12", FirstName: "Anne", LastName: "O'Brien"}, nil},
		{"mismatch", RegisterInput{Password: "secret12", ConfirmPassword: "secret13"}, ErrPasswordMismatch},
		{"digits in name", RegisterInput{FirstName: "Anne2"}, ErrInvalidName},
		{"bad last name", RegisterInput{FirstName: "Anne", LastName: "Sm!th"}, ErrInvalidName},
		{"hyphen and apostrophe ok", RegisterInput{FirstName: "Jean-Luc", LastName: "D'Arcy"}, nil},
		{"no confirm skips match check", RegisterInput{Password: "secret12", FirstName: "Anne"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.in.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterBlocksInvalidFormLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Register(context.Background(), RegisterInput{
		Password:        "secret12",
		ConfirmPassword: "different",
		FirstName:       "Anne",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Register() error = %v, want ErrPasswordMismatch", err)
	}
	if called {
		t.Fatal("invalid form must not reach the server")
	}
}
