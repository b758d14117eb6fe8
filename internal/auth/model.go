package auth

import (
	"time"

	"github.com/google/uuid"
)

// Roles supported by the platform.
const (
	RolePatient   = "patient"
	RoleTherapist = "therapist"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RolePatient || r == RoleTherapist
}

// User is a platform account.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	DateJoined    time.Time `json:"date_joined"`

	// Never serialized.
	PasswordHash string `json:"-"`
}
