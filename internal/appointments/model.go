package appointments

import "github.com/google/uuid"

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is one booked therapy session.
type Appointment struct {
	ID               uuid.UUID `json:"id"`
	TherapistID      uuid.UUID `json:"therapist_id"`
	TherapistName    string    `json:"therapist_name"`
	TherapistEmail   string    `json:"therapist_email"`
	PatientID        uuid.UUID `json:"patient_id"`
	PatientEmail     string    `json:"patient_email"`
	PatientFirstName string    `json:"patient_first_name"`
	PatientLastName  string    `json:"patient_last_name"`
	Date             string    `json:"date"`      // "YYYY-MM-DD"
	TimeSlot         string    `json:"time_slot"` // "HH:MM:SS"
	Status           string    `json:"status"`
	TherapistNote    string    `json:"therapist_note,omitempty"`
}
