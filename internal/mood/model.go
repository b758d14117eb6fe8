package mood

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one mood observation logged by a patient. Scores are on a 1-5
// scale; 0 never appears in stored entries (it is the chart sentinel for a
// day without an entry).
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	MoodScore int       `json:"mood_score"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MinScore and MaxScore bound the mood scale.
const (
	MinScore = 1
	MaxScore = 5
)

// ValidScore reports whether s is on the 1-5 scale.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}
