package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riddhima-gkmit/mindease-platform/pkg/schedule"
)

// Step is a stage of the booking flow.
type Step string

const (
	StepDetails  Step = "details"
	StepSchedule Step = "schedule"
	StepConfirm  Step = "confirm"
	StepSuccess  Step = "success"
)

var (
	// ErrNoDateSelected is returned when advancing to confirmation
	// without a complete date and time selection.
	ErrNoDateSelected = errors.New("client: select a date and time first")
	// ErrFlowClosed is returned after the flow reached success or was
	// reopened for a different therapist mid-call.
	ErrFlowClosed = errors.New("client: booking flow closed")
)

// BookingFlow drives the details -> schedule -> confirm -> success
// sequence of booking an appointment. It is safe for concurrent use;
// slot fetches are sequence-stamped so a slow response for a previously
// selected date can never overwrite the current date's slots.
type BookingFlow struct {
	client *Client
	now    func() time.Time

	mu           sync.Mutex
	therapistID  string
	step         Step
	windows      []schedule.Window
	selectedDate string
	selectedTime string
	booked       []string
	fetchSeq     int
	appointment  *Appointment
}

// NewBookingFlow creates a flow bound to one API client.
func NewBookingFlow(c *Client) *BookingFlow {
	return &BookingFlow{client: c, now: time.Now, step: StepDetails}
}

// Open starts (or restarts) the flow for a therapist, loading their
// recurring availability. Any prior selection is discarded.
func (f *BookingFlow) Open(ctx context.Context, therapistID string) error {
	windows, err := f.client.TherapistAvailability(ctx, therapistID)
	if err != nil {
		return err
	}
	converted := make([]schedule.Window, len(windows))
	for i, w := range windows {
		converted[i] = schedule.Window{
			ID:        w.ID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.therapistID = therapistID
	f.step = StepDetails
	f.windows = converted
	f.selectedDate = ""
	f.selectedTime = ""
	f.booked = nil
	f.fetchSeq++
	f.appointment = nil
	return nil
}

// Step returns the current stage.
func (f *BookingFlow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Dates returns the upcoming dates that have at least one slot.
func (f *BookingFlow) Dates() []schedule.HorizonDate {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDow := schedule.StartTimesByWeekday(f.windows)
	return schedule.BookableDates(byDow, f.now(), schedule.DefaultHorizonDays)
}

// Slots returns the candidate start times for the selected date. Past
// slots are dropped when the date is today; booked ones are flagged.
func (f *BookingFlow) Slots() []schedule.Candidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectedDate == "" {
		return nil
	}
	byDow := schedule.StartTimesByWeekday(f.windows)
	return schedule.CandidatesForDate(byDow, f.selectedDate, f.booked, f.now())
}

// SelectDate picks a date, clears any chosen time, and refreshes the
// booked slots. A response that arrives after the user has moved on to
// another date is discarded.
func (f *BookingFlow) SelectDate(ctx context.Context, date string) error {
	f.mu.Lock()
	f.selectedDate = date
	f.selectedTime = ""
	f.booked = nil
	f.fetchSeq++
	seq := f.fetchSeq
	therapistID := f.therapistID
	f.mu.Unlock()

	booked, err := f.client.BookedSlots(ctx, therapistID, date)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.fetchSeq || f.selectedDate != date {
		return nil
	}
	f.booked = booked
	return nil
}

// SelectTime picks a start time ("HH:MM") on the selected date.
func (f *BookingFlow) SelectTime(start string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectedTime = start
}

// Next advances details -> schedule -> confirm. Moving past schedule
// requires a date and time.
func (f *BookingFlow) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepDetails:
		f.step = StepSchedule
	case StepSchedule:
		if f.selectedDate == "" || f.selectedTime == "" {
			return ErrNoDateSelected
		}
		f.step = StepConfirm
	case StepSuccess:
		return ErrFlowClosed
	}
	return nil
}

// Back returns schedule -> details and confirm -> schedule.
func (f *BookingFlow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepSchedule:
		f.step = StepDetails
	case StepConfirm:
		f.step = StepSchedule
	}
}

// Confirm books the selected slot. On failure the flow stays on the
// confirmation step so the user can retry or go back.
func (f *BookingFlow) Confirm(ctx context.Context) (*Appointment, error) {
	f.mu.Lock()
	if f.step != StepConfirm {
		f.mu.Unlock()
		return nil, ErrNoDateSelected
	}
	therapistID := f.therapistID
	date := f.selectedDate
	timeSlot := f.selectedTime + ":00"
	f.mu.Unlock()

	appt, err := f.client.BookAppointment(ctx, therapistID, date, timeSlot)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepSuccess
	f.appointment = appt
	return appt, nil
}

// Appointment returns the booked appointment once the flow has succeeded.
func (f *BookingFlow) Appointment() *Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appointment
}
