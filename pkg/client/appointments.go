package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Appointment is a booked session as the API renders it.
type Appointment struct {
	ID               string `json:"id"`
	TherapistID      string `json:"therapist_id"`
	TherapistName    string `json:"therapist_name"`
	TherapistEmail   string `json:"therapist_email"`
	PatientID        string `json:"patient_id"`
	PatientEmail     string `json:"patient_email"`
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	Date             string `json:"date"`      // "YYYY-MM-DD"
	TimeSlot         string `json:"time_slot"` // "HH:MM:SS"
	Status           string `json:"status"`
	TherapistNote    string `json:"therapist_note"`
}

// BookAppointment reserves a slot with a therapist.
func (c *Client) BookAppointment(ctx context.Context, therapistID, date, timeSlot string) (*Appointment, error) {
	in := map[string]string{"therapist": therapistID, "date": date, "time_slot": timeSlot}
	var out Appointment
	if err := c.post(ctx, "/api/v1/appointments/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAppointments returns one page of the user's appointments.
func (c *Client) ListAppointments(ctx context.Context, page int) (*Page[Appointment], error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	var out Page[Appointment]
	if err := c.get(ctx, "/api/v1/appointments/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAppointment cancels an appointment the user participates in.
func (c *Client) CancelAppointment(ctx context.Context, id string) (*Appointment, error) {
	var out struct {
		Message     string       `json:"message"`
		Appointment *Appointment `json:"appointment"`
	}
	path := "/api/v1/appointments/" + url.PathEscape(id) + "/cancel/"
	if err := c.patch(ctx, path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Appointment, nil
}

// SetAppointmentNote stores a session note. Therapists only.
func (c *Client) SetAppointmentNote(ctx context.Context, id, note string) (*Appointment, error) {
	var out Appointment
	path := "/api/v1/appointments/" + url.PathEscape(id) + "/notes/"
	if err := c.patch(ctx, path, map[string]string{"therapist_note": note}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookedSlots returns the taken "HH:MM:SS" starts for a therapist on a date.
func (c *Client) BookedSlots(ctx context.Context, therapistID, date string) ([]string, error) {
	q := url.Values{}
	q.Set("date", date)
	path := fmt.Sprintf("/api/v1/appointments/therapist/%s/booked-slots/", url.PathEscape(therapistID))
	var out struct {
		BookedSlots []string `json:"booked_slots"`
	}
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out.BookedSlots, nil
}
