package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"
)

// User is an account as the API renders it.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	DateJoined    time.Time `json:"date_joined"`
}

// RegisterInput carries the registration form. ConfirmPassword is checked
// locally and never sent to the server.
type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            string `json:"role"`
	Username        string `json:"username,omitempty"`
}

var (
	// ErrPasswordMismatch reports that the two password fields differ.
	ErrPasswordMismatch = errors.New("client: passwords do not match")
	// ErrInvalidName reports a name with characters outside letters,
	// spaces, apostrophes and hyphens.
	ErrInvalidName = errors.New("client: name contains invalid characters")

	namePattern = regexp.MustCompile(`^[\p{L}][\p{L} '-]*$`)
)

// Validate runs the local form checks. Register calls it before issuing
// any request, so invalid forms never reach the server.
func (in RegisterInput) Validate() error {
	if in.ConfirmPassword != "" && in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if in.FirstName != "" && !namePattern.MatchString(in.FirstName) {
		return ErrInvalidName
	}
	if in.LastName != "" && !namePattern.MatchString(in.LastName) {
		return ErrInvalidName
	}
	return nil
}

// Register creates an account. The user must verify their email before
// some flows unlock; tokens are not issued here.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out struct {
		Message string `json:"message"`
		User    *User  `json:"user"`
	}
	if err := c.post(ctx, "/api/v1/auth/register/", in, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// LoginResult is the login response payload.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// Login authenticates and stores the issued token pair so subsequent
// calls are sent authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.post(ctx, "/api/v1/auth/login/", in, &out); err != nil {
		return nil, err
	}
	c.store.SetPair(out.Access, out.Refresh)
	return &out, nil
}

// Logout drops the stored tokens. Purely client side; the server keeps
// tokens stateless.
func (c *Client) Logout() {
	c.store.Clear()
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "/api/v1/auth/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfile rewrites the mutable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	var out User
	if err := c.put(ctx, "/api/v1/auth/profile/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks for a reset email. The response is identical
// whether or not the account exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "/api/v1/auth/password-reset/", map[string]string{"email": email}, nil)
}

// ConfirmPasswordReset sets a new password using the emailed uid/token pair.
func (c *Client) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	path := fmt.Sprintf("/api/v1/auth/password-reset-confirm/%s/%s/", url.PathEscape(uid), url.PathEscape(token))
	return c.post(ctx, path, map[string]string{"new_password": newPassword}, nil)
}
