package therapists

import "github.com/google/uuid"

// Consultation modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeBoth    = "both"
)

// ValidMode reports whether m is a known consultation mode.
func ValidMode(m string) bool {
	return m == ModeOnline || m == ModeOffline || m == ModeBoth
}

// Profile is a therapist's public listing. ID is the therapist's user ID;
// availability and appointments key off it.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Specialization   string    `json:"specialization"`
	ExperienceYears  int       `json:"experience_years"`
	ConsultationMode string    `json:"consultation_mode"`
	About            string    `json:"about,omitempty"`
	ClinicAddress    string    `json:"clinic_address,omitempty"`
	IsApproved       bool      `json:"is_approved"`
}

// ProfileInput carries the profile create/update form.
type ProfileInput struct {
	Specialization   string `json:"specialization"`
	ExperienceYears  int    `json:"experience_years"`
	ConsultationMode string `json:"consultation_mode"`
	About            string `json:"about"`
	ClinicAddress    string `json:"clinic_address"`
}
