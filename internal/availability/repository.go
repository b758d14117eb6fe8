package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/riddhima-gkmit/mindease-platform/pkg/schedule"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists recurring availability windows in Postgres. Times are
// stored as TIME columns and surfaced as "HH:MM:SS" strings on the wire.
type Repository struct {
	db Querier
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		panic("availability: querier required")
	}
	return &Repository{db: db}
}

// ListByTherapist returns the therapist's recurring windows.
func (r *Repository) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]schedule.Window, error) {
	query := `
		SELECT id, day_of_week, to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS')
		FROM availability_windows
		WHERE therapist_id = $1
		ORDER BY day_of_week, start_time
	`
	rows, err := r.db.Query(ctx, query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("availability: list failed: %w", err)
	}
	defer rows.Close()

	var windows []schedule.Window
	for rows.Next() {
		var w schedule.Window
		if err := rows.Scan(&w.ID, &w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("availability: scan failed: %w", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("availability: rows failed: %w", err)
	}
	return windows, nil
}

// Create inserts one recurring window for the therapist.
func (r *Repository) Create(ctx context.Context, therapistID uuid.UUID, dayOfWeek, startTime, endTime string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO availability_windows (id, therapist_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4::time, $5::time)
	`, id, therapistID, dayOfWeek, startTime, endTime)
	if err != nil {
		return uuid.Nil, fmt.Errorf("availability: insert failed: %w", err)
	}
	return id, nil
}
