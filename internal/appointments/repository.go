package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSlotTaken is returned when (therapist, date, time_slot) is already
	// booked; the table's unique constraint is the source of truth.
	ErrSlotTaken = errors.New("appointments: slot already booked")
	// ErrNotFound is returned when the appointment does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("appointments: not found")
)

const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists appointments in Postgres.
type Repository struct {
	db Querier
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		panic("appointments: querier required")
	}
	return &Repository{db: db}
}

// Create books a slot. The partial unique index on
// (therapist_id, date, time_slot) for non-cancelled rows enforces
// exclusivity; violations surface as ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, patientID, therapistID uuid.UUID, date, timeSlot string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, therapist_id, date, time_slot, status)
		VALUES ($1, $2, $3, $4::date, $5::time, $6)
	`, id, patientID, therapistID, date, timeSlot, StatusPending)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return uuid.Nil, ErrSlotTaken
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("appointments: insert failed: %w", err)
	}
	return id, nil
}

const appointmentColumns = `
	a.id, a.therapist_id, t.username, t.email,
	a.patient_id, p.email, p.first_name, p.last_name,
	to_char(a.date, 'YYYY-MM-DD'), to_char(a.time_slot, 'HH24:MI:SS'),
	a.status, COALESCE(a.therapist_note, '')
`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.TherapistID, &a.TherapistName, &a.TherapistEmail,
		&a.PatientID, &a.PatientEmail, &a.PatientFirstName, &a.PatientLastName,
		&a.Date, &a.TimeSlot, &a.Status, &a.TherapistNote)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: scan failed: %w", err)
	}
	return &a, nil
}

// ListForUser returns a page of appointments the user participates in,
// soonest first, either as patient or as therapist.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Appointment, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments a
		WHERE a.patient_id = $1 OR a.therapist_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("appointments: count failed: %w", err)
	}

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users t ON t.id = a.therapist_id
		JOIN users p ON p.id = a.patient_id
		WHERE a.patient_id = $1 OR a.therapist_id = $1
		ORDER BY a.date, a.time_slot
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("appointments: rows failed: %w", err)
	}
	return out, total, nil
}

// GetForUser fetches one appointment visible to the user.
func (r *Repository) GetForUser(ctx context.Context, userID, appointmentID uuid.UUID) (*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN users t ON t.id = a.therapist_id
		JOIN users p ON p.id = a.patient_id
		WHERE a.id = $1 AND (a.patient_id = $2 OR a.therapist_id = $2)
	`
	return scanAppointment(r.db.QueryRow(ctx, query, appointmentID, userID))
}

// Cancel marks an active appointment cancelled, scoped to a participant.
func (r *Repository) Cancel(ctx context.Context, userID, appointmentID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET status = $1
		WHERE id = $2 AND (patient_id = $3 OR therapist_id = $3) AND status IN ($4, $5)
	`, StatusCancelled, appointmentID, userID, StatusPending, StatusConfirmed)
	if err != nil {
		return fmt.Errorf("appointments: cancel failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetNote stores the therapist's session note, scoped to the therapist.
func (r *Repository) SetNote(ctx context.Context, therapistID, appointmentID uuid.UUID, note string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET therapist_note = $1
		WHERE id = $2 AND therapist_id = $3
	`, note, appointmentID, therapistID)
	if err != nil {
		return fmt.Errorf("appointments: set note failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BookedSlots returns the non-cancelled "HH:MM:SS" slots for the therapist
// on a date.
func (r *Repository) BookedSlots(ctx context.Context, therapistID uuid.UUID, date string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(time_slot, 'HH24:MI:SS')
		FROM appointments
		WHERE therapist_id = $1 AND date = $2::date AND status <> $3
		ORDER BY time_slot
	`, therapistID, date, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("appointments: booked slots failed: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: rows failed: %w", err)
	}
	return slots, nil
}
