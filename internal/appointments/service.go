package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riddhima-gkmit/mindease-platform/internal/notify"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
	"github.com/riddhima-gkmit/mindease-platform/pkg/schedule"
)

var tracer = otel.Tracer("mindease.internal.appointments")

// ErrInvalidSlot is returned when the requested slot does not fall inside
// the therapist's published availability for that weekday.
var ErrInvalidSlot = errors.New("appointments: slot outside availability")

// WindowSource exposes a therapist's availability windows.
type WindowSource interface {
	ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]schedule.Window, error)
}

// Service coordinates booking, cancellation and notes across the
// repository, the availability windows and the booked-slots cache.
type Service struct {
	repo    *Repository
	windows WindowSource
	cache   *BookedSlotsCache
	email   notify.EmailSender
	logger  *logging.Logger
	now     func() time.Time
}

// NewService wires the appointments service. email may be nil.
func NewService(repo *Repository, windows WindowSource, cache *BookedSlotsCache, email notify.EmailSender, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if windows == nil {
		panic("appointments: window source required")
	}
	if cache == nil {
		panic("appointments: cache required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, windows: windows, cache: cache, email: email, logger: logger, now: time.Now}
}

// Book validates the slot against the therapist's availability and creates
// a pending appointment. The booked-slots cache for that day is dropped so
// other patients see the slot disappear immediately.
func (s *Service) Book(ctx context.Context, patientID, therapistID uuid.UUID, date, timeSlot string) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "Service.Book")
	defer span.End()
	span.SetAttributes(
		attribute.String("therapist_id", therapistID.String()),
		attribute.String("date", date),
	)

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("appointments: invalid date %q: %w", date, err)
	}
	if _, err := time.Parse("15:04:05", timeSlot); err != nil {
		return nil, fmt.Errorf("appointments: invalid time slot %q: %w", timeSlot, err)
	}

	windows, err := s.windows.ListByTherapist(ctx, therapistID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !slotWithinWindows(windows, day.Weekday(), timeSlot) {
		return nil, ErrInvalidSlot
	}

	id, err := s.repo.Create(ctx, patientID, therapistID, date, timeSlot)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.Invalidate(ctx, therapistID, date)

	appt, err := s.repo.GetForUser(ctx, patientID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.email != nil {
		msg := notify.AppointmentBookedEmail(appt.PatientEmail, appt.PatientFirstName, appt.TherapistName, appt.Date, appt.TimeSlot)
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Warn("booking confirmation email failed", "appointment_id", id, "error", err)
		}
	}
	return appt, nil
}

// slotWithinWindows reports whether timeSlot starts one of the expanded
// hourly slots for that weekday.
func slotWithinWindows(windows []schedule.Window, weekday time.Weekday, timeSlot string) bool {
	byDow := schedule.StartTimesByWeekday(windows)
	want := timeSlot
	if len(want) > 5 {
		want = want[:5]
	}
	for _, start := range byDow[weekday] {
		if start == want {
			return true
		}
	}
	return false
}

// List returns a page of the user's appointments plus the total count.
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Appointment, int, error) {
	ctx, span := tracer.Start(ctx, "Service.List")
	defer span.End()
	return s.repo.ListForUser(ctx, userID, limit, offset)
}

// Cancel cancels an appointment the user participates in and drops the
// cached slots for that day.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID uuid.UUID) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "Service.Cancel")
	defer span.End()
	span.SetAttributes(attribute.String("appointment_id", appointmentID.String()))

	appt, err := s.repo.GetForUser(ctx, userID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Cancel(ctx, userID, appointmentID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.Invalidate(ctx, appt.TherapistID, appt.Date)
	appt.Status = StatusCancelled
	return appt, nil
}

// SetNote records the therapist's note on their own appointment.
func (s *Service) SetNote(ctx context.Context, therapistID, appointmentID uuid.UUID, note string) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "Service.SetNote")
	defer span.End()

	if err := s.repo.SetNote(ctx, therapistID, appointmentID, note); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.repo.GetForUser(ctx, therapistID, appointmentID)
}

// BookedSlots returns the non-cancelled "HH:MM:SS" starts for a therapist
// and date, served from the cache when warm.
func (s *Service) BookedSlots(ctx context.Context, therapistID uuid.UUID, date string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Service.BookedSlots")
	defer span.End()
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("appointments: invalid date %q: %w", date, err)
	}
	return s.cache.BookedSlots(ctx, therapistID, date)
}
