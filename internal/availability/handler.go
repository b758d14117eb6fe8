package availability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
	"github.com/riddhima-gkmit/mindease-platform/pkg/schedule"
)

// Handler exposes therapist availability endpoints.
type Handler struct {
	repo        *Repository
	horizonDays int
	logger      *logging.Logger
	now         func() time.Time
}

// NewHandler creates the availability handler.
func NewHandler(repo *Repository, horizonDays int, logger *logging.Logger) *Handler {
	if horizonDays <= 0 {
		horizonDays = schedule.DefaultHorizonDays
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, horizonDays: horizonDays, logger: logger, now: time.Now}
}

// ListForTherapist handles GET /therapists/availability/{id}/ and returns the
// raw recurring windows.
func (h *Handler) ListForTherapist(w http.ResponseWriter, r *http.Request) {
	therapistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Therapist not found.")
		return
	}

	windows, err := h.repo.ListByTherapist(r.Context(), therapistID)
	if err != nil {
		h.logger.Error("availability list failed", "therapist_id", therapistID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if windows == nil {
		windows = []schedule.Window{}
	}
	respond.JSON(w, http.StatusOK, windows)
}

// BookableDates handles GET /therapists/availability/{id}/dates/ and returns
// the upcoming horizon dates that have at least one bookable slot.
func (h *Handler) BookableDates(w http.ResponseWriter, r *http.Request) {
	therapistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Therapist not found.")
		return
	}

	windows, err := h.repo.ListByTherapist(r.Context(), therapistID)
	if err != nil {
		h.logger.Error("availability fetch failed", "therapist_id", therapistID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	byDow := schedule.StartTimesByWeekday(windows)
	dates := schedule.BookableDates(byDow, h.now(), h.horizonDays)
	respond.JSON(w, http.StatusOK, map[string]any{"dates": dates})
}

type createInput struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Create handles POST /therapists/availability/create/ for the logged-in
// therapist.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	therapistID := middleware.UserID(r.Context())

	var in createInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if fields := validateWindow(in); len(fields) > 0 {
		respond.FieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	id, err := h.repo.Create(r.Context(), therapistID, in.DayOfWeek, in.StartTime, in.EndTime)
	if err != nil {
		h.logger.Error("availability create failed", "therapist_id", therapistID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{
		"message": "Availability created.",
		"id":      id.String(),
	})
}

func validateWindow(in createInput) map[string][]string {
	fields := map[string][]string{}
	if _, ok := schedule.WeekdayIndex(in.DayOfWeek); !ok {
		fields["day_of_week"] = append(fields["day_of_week"], "Day must be one of Monday through Sunday.")
	}
	start, errStart := time.Parse("15:04:05", in.StartTime)
	if errStart != nil {
		fields["start_time"] = append(fields["start_time"], "Time must be in HH:MM:SS format.")
	}
	end, errEnd := time.Parse("15:04:05", in.EndTime)
	if errEnd != nil {
		fields["end_time"] = append(fields["end_time"], "Time must be in HH:MM:SS format.")
	}
	if errStart == nil && errEnd == nil && !start.Before(end) {
		fields["non_field_errors"] = append(fields["non_field_errors"], "Start time must be before end time.")
	}
	return fields
}
