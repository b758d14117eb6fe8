package recommendations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository reads the curated recommendation catalog.
type Repository struct {
	db Querier
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		panic("recommendations: querier required")
	}
	return &Repository{db: db}
}

// ListByCategory returns the catalog entries for one category.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category, title, description
		FROM recommendations
		WHERE category = $1
		ORDER BY title
	`, category)
	if err != nil {
		return nil, fmt.Errorf("recommendations: list failed: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Category, &it.Title, &it.Description); err != nil {
			return nil, fmt.Errorf("recommendations: scan failed: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recommendations: rows failed: %w", err)
	}
	return items, nil
}
