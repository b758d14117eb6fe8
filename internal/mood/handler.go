package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/internal/observability/metrics"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler exposes the mood tracking endpoints.
type Handler struct {
	repo    *Repository
	metrics *metrics.APIMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewHandler creates the mood handler. m may be nil.
func NewHandler(repo *Repository, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// List handles GET /mood/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	page, pageSize := respond.PageParams(r, defaultPageSize, maxPageSize)

	entries, total, err := h.repo.ListPage(r.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("mood list failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	respond.JSON(w, http.StatusOK, respond.NewPage(r, total, page, pageSize, entries))
}

type entryInput struct {
	MoodScore int    `json:"mood_score"`
	Note      string `json:"note"`
}

// Create handles POST /mood/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var in entryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !ValidScore(in.MoodScore) {
		respond.FieldError(w, http.StatusBadRequest, "mood_score", "Mood score must be between 1 and 5.")
		return
	}

	entry, err := h.repo.Create(r.Context(), userID, in.MoodScore, in.Note)
	if err != nil {
		h.logger.Error("mood create failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.metrics.ObserveMoodEntry()
	respond.JSON(w, http.StatusCreated, map[string]any{"message": "Mood entry created.", "entry": entry})
}

// Update handles PUT /mood/{id}/.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Mood entry not found.")
		return
	}

	var in entryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !ValidScore(in.MoodScore) {
		respond.FieldError(w, http.StatusBadRequest, "mood_score", "Mood score must be between 1 and 5.")
		return
	}

	entry, err := h.repo.Update(r.Context(), userID, entryID, in.MoodScore, in.Note)
	if errors.Is(err, ErrNotFound) {
		respond.Detail(w, http.StatusNotFound, "Mood entry not found.")
		return
	}
	if err != nil {
		h.logger.Error("mood update failed", "user_id", userID, "entry_id", entryID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Mood entry updated.", "entry": entry})
}

// ChartData handles GET /mood/chart-data/?days={7|30}.
func (h *Handler) ChartData(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	days := 30
	if r.URL.Query().Get("days") == "7" {
		days = 7
	}

	today := h.now()
	since := today.UTC().Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))
	entries, err := h.repo.ListSince(r.Context(), userID, since)
	if err != nil {
		h.logger.Error("chart data fetch failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, BuildChartData(entries, days, today))
}
