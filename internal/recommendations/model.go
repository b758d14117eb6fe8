package recommendations

import "github.com/google/uuid"

// Recommendation categories, ordered by the mood average that selects them.
const (
	CategoryUplifting   = "uplifting"
	CategoryCalming     = "calming"
	CategoryMaintenance = "maintenance"
	CategoryGratitude   = "gratitude"
)

// Item is a single self-care suggestion.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// CategoryFor maps a 7-day mood average onto a recommendation category.
// Low averages get mood-lifting content, high averages get gratitude
// prompts to reinforce what is working.
func CategoryFor(average float64) string {
	switch {
	case average <= 2:
		return CategoryUplifting
	case average <= 3:
		return CategoryCalming
	case average <= 4:
		return CategoryMaintenance
	default:
		return CategoryGratitude
	}
}
