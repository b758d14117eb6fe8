package therapists

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the therapist has no profile yet.
	ErrNotFound = errors.New("therapists: profile not found")
	// ErrProfileExists is returned on duplicate profile creation.
	ErrProfileExists = errors.New("therapists: profile already exists")
)

const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists therapist profiles in Postgres.
type Repository struct {
	db Querier
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		panic("therapists: querier required")
	}
	return &Repository{db: db}
}

const profileColumns = `
	u.id, u.username, u.email,
	p.specialization, p.experience_years, p.consultation_mode, p.about, p.clinic_address, p.is_approved
`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Username, &p.Email,
		&p.Specialization, &p.ExperienceYears, &p.ConsultationMode, &p.About, &p.ClinicAddress, &p.IsApproved)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("therapists: scan profile: %w", err)
	}
	return &p, nil
}

// GetByUserID fetches a therapist's own profile.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM therapist_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	return scanProfile(r.db.QueryRow(ctx, query, userID))
}

// Create inserts a new profile for the therapist user.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, in ProfileInput) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO therapist_profiles (user_id, specialization, experience_years, consultation_mode, about, clinic_address)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, in.Specialization, in.ExperienceYears, in.ConsultationMode, in.About, in.ClinicAddress)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("therapists: insert profile: %w", err)
	}
	return nil
}

// Update rewrites the profile fields.
func (r *Repository) Update(ctx context.Context, userID uuid.UUID, in ProfileInput) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE therapist_profiles
		SET specialization = $1, experience_years = $2, consultation_mode = $3, about = $4, clinic_address = $5
		WHERE user_id = $6
	`, in.Specialization, in.ExperienceYears, in.ConsultationMode, in.About, in.ClinicAddress, userID)
	if err != nil {
		return fmt.Errorf("therapists: update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListApproved returns a page of approved therapists, optionally filtered by
// specialization, plus the total count.
func (r *Repository) ListApproved(ctx context.Context, specialization string, limit, offset int) ([]Profile, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM therapist_profiles p
		WHERE p.is_approved AND ($1 = '' OR p.specialization ILIKE $1)
	`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, specialization).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("therapists: count failed: %w", err)
	}

	query := `
		SELECT ` + profileColumns + `
		FROM therapist_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.is_approved AND ($1 = '' OR p.specialization ILIKE $1)
		ORDER BY u.username
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, specialization, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("therapists: list failed: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("therapists: rows failed: %w", err)
	}
	return profiles, total, nil
}
