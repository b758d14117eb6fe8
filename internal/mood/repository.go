package mood

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when an entry does not exist or belongs to
// another user.
var ErrNotFound = errors.New("mood: entry not found")

// Querier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists mood entries in Postgres.
type Repository struct {
	db Querier
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		panic("mood: querier required")
	}
	return &Repository{db: db}
}

// Create inserts a new entry for the user.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, score int, note string) (*Entry, error) {
	id := uuid.New()
	query := `
		INSERT INTO mood_entries (id, user_id, mood_score, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query, id, userID, score, note).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("mood: insert failed: %w", err)
	}
	return &Entry{ID: id, UserID: userID, MoodScore: score, Note: note, CreatedAt: createdAt}, nil
}

// Update rewrites score and note of an entry owned by the user.
func (r *Repository) Update(ctx context.Context, userID, entryID uuid.UUID, score int, note string) (*Entry, error) {
	query := `
		UPDATE mood_entries
		SET mood_score = $1, note = $2
		WHERE id = $3 AND user_id = $4
		RETURNING created_at
	`
	var createdAt time.Time
	err := r.db.QueryRow(ctx, query, score, note, entryID, userID).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mood: update failed: %w", err)
	}
	return &Entry{ID: entryID, UserID: userID, MoodScore: score, Note: note, CreatedAt: createdAt}, nil
}

// ListPage returns a page of the user's entries, newest first, plus the
// total count for pagination.
func (r *Repository) ListPage(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM mood_entries WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("mood: count failed: %w", err)
	}

	query := `
		SELECT id, mood_score, note, created_at
		FROM mood_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("mood: list failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e := Entry{UserID: userID}
		if err := rows.Scan(&e.ID, &e.MoodScore, &e.Note, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("mood: scan failed: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("mood: rows failed: %w", err)
	}
	return entries, total, nil
}

// ListSince returns the user's entries created on or after the given
// instant, oldest first. Chart derivation relies on this ordering for its
// last-write-wins day indexing.
func (r *Repository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Entry, error) {
	query := `
		SELECT id, mood_score, note, created_at
		FROM mood_entries
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("mood: list since failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e := Entry{UserID: userID}
		if err := rows.Scan(&e.ID, &e.MoodScore, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("mood: scan failed: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mood: rows failed: %w", err)
	}
	return entries, nil
}
