package client

import (
	"context"
	"net/url"
	"strconv"
)

// Therapist is a directory listing entry.
type Therapist struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Specialization   string `json:"specialization"`
	ExperienceYears  int    `json:"experience_years"`
	ConsultationMode string `json:"consultation_mode"`
	About            string `json:"about"`
	ClinicAddress    string `json:"clinic_address"`
}

// ListTherapists returns one page of the approved directory, optionally
// filtered by specialization.
func (c *Client) ListTherapists(ctx context.Context, specialization string, page int) (*Page[Therapist], error) {
	q := url.Values{}
	if specialization != "" {
		q.Set("specialization", specialization)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	var out Page[Therapist]
	if err := c.get(ctx, "/api/v1/therapists/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailabilityWindow is a recurring weekly availability window.
type AvailabilityWindow struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TherapistAvailability returns the therapist's raw recurring windows.
func (c *Client) TherapistAvailability(ctx context.Context, therapistID string) ([]AvailabilityWindow, error) {
	var out []AvailabilityWindow
	path := "/api/v1/therapists/availability/" + url.PathEscape(therapistID) + "/"
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookableDate is an upcoming calendar date with at least one slot.
type BookableDate struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// TherapistBookableDates returns the upcoming dates with bookable slots.
func (c *Client) TherapistBookableDates(ctx context.Context, therapistID string) ([]BookableDate, error) {
	var out struct {
		Dates []BookableDate `json:"dates"`
	}
	path := "/api/v1/therapists/availability/" + url.PathEscape(therapistID) + "/dates/"
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Dates, nil
}
