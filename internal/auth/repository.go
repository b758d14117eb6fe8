package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserNotFound is returned when no matching user exists.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrEmailTaken is returned on unique-constraint violation at registration.
	ErrEmailTaken = errors.New("auth: email already registered")
)

// uniqueViolation is the Postgres error code for unique constraints.
const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists users in Postgres.
type Repository struct {
	db Querier
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		panic("auth: querier required")
	}
	return &Repository{db: db}
}

const userColumns = `id, username, email, first_name, last_name, role, email_verified, date_joined, password_hash`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.EmailVerified, &u.DateJoined, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("auth: scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user together with their email verification token.
func (r *Repository) Create(ctx context.Context, u *User, verificationToken string) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, role, password_hash, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING date_joined
	`
	err := r.db.QueryRow(ctx, query,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Role, u.PasswordHash, verificationToken,
	).Scan(&u.DateJoined)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("auth: insert user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByID fetches a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// UpdateProfile rewrites the mutable profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, username, firstName, lastName string) (*User, error) {
	query := `
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3
		WHERE id = $4
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, username, firstName, lastName, id))
}

// MarkVerified flips the verified flag when uid+token match an unverified
// user. Returns ErrUserNotFound for a bad pair.
func (r *Repository) MarkVerified(ctx context.Context, id uuid.UUID, token string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email_verified = TRUE, verification_token = NULL
		WHERE id = $1 AND verification_token = $2
	`, id, token)
	if err != nil {
		return fmt.Errorf("auth: mark verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetResetToken stores a password reset token with its expiry.
func (r *Repository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	if _, err := r.db.Exec(ctx, `
		UPDATE users SET reset_token = $1, reset_token_expires = $2 WHERE id = $3
	`, token, expires, id); err != nil {
		return fmt.Errorf("auth: set reset token: %w", err)
	}
	return nil
}

// ResetPassword swaps in a new password hash when uid+token match and the
// token has not expired, then invalidates the token.
func (r *Repository) ResetPassword(ctx context.Context, id uuid.UUID, token, newHash string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL
		WHERE id = $2 AND reset_token = $3 AND reset_token_expires > $4
	`, newHash, id, token, now)
	if err != nil {
		return fmt.Errorf("auth: reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
