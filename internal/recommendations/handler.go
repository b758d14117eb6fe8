package recommendations

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/internal/mood"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

const windowDays = 7

// MoodSource provides the recent mood entries the category pick is based on.
type MoodSource interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]mood.Entry, error)
}

// Handler serves personalized self-care recommendations.
type Handler struct {
	repo   *Repository
	moods  MoodSource
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler creates the recommendations handler.
func NewHandler(repo *Repository, moods MoodSource, logger *logging.Logger) *Handler {
	if repo == nil {
		panic("recommendations: repository required")
	}
	if moods == nil {
		panic("recommendations: mood source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, moods: moods, logger: logger, now: time.Now}
}

type response struct {
	AverageMood     *float64 `json:"average_mood"`
	Category        string   `json:"category,omitempty"`
	Message         string   `json:"message,omitempty"`
	Recommendations []Item   `json:"recommendations"`
}

// List handles GET /recommendations/. The category comes from the user's
// 7-day mood average; users with no recent entries get a prompt to log
// their mood instead of a catalog page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	since := h.now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(windowDays - 1))

	entries, err := h.moods.ListSince(r.Context(), userID, since)
	if err != nil {
		h.logger.Error("mood lookup failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(entries) == 0 {
		respond.JSON(w, http.StatusOK, response{
			Message:         "Log your mood for a few days to get personalized recommendations.",
			Recommendations: []Item{},
		})
		return
	}

	sum := 0
	for _, e := range entries {
		sum += e.MoodScore
	}
	avg := math.Round(float64(sum)/float64(len(entries))*10) / 10
	category := CategoryFor(avg)

	items, err := h.repo.ListByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("catalog lookup failed", "user_id", userID, "category", category, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []Item{}
	}
	respond.JSON(w, http.StatusOK, response{
		AverageMood:     &avg,
		Category:        category,
		Recommendations: items,
	})
}
