package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/auth"
	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/internal/observability/metrics"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler exposes the appointment endpoints.
type Handler struct {
	service *Service
	metrics *metrics.APIMetrics
	logger  *logging.Logger
}

// NewHandler creates the appointments handler. m may be nil.
func NewHandler(service *Service, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	if service == nil {
		panic("appointments: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, metrics: m, logger: logger}
}

type bookInput struct {
	Therapist string `json:"therapist"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

// Book handles POST /appointments/.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var in bookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	therapistID, err := uuid.Parse(in.Therapist)
	if err != nil {
		respond.FieldError(w, http.StatusBadRequest, "therapist", "A valid therapist id is required.")
		return
	}
	if in.Date == "" {
		respond.FieldError(w, http.StatusBadRequest, "date", "This field is required.")
		return
	}
	if in.TimeSlot == "" {
		respond.FieldError(w, http.StatusBadRequest, "time_slot", "This field is required.")
		return
	}

	appt, err := h.service.Book(r.Context(), userID, therapistID, in.Date, in.TimeSlot)
	switch {
	case errors.Is(err, ErrSlotTaken):
		h.metrics.ObserveBooking("slot_taken")
		respond.NonFieldError(w, http.StatusBadRequest, "This time slot is already booked.")
	case errors.Is(err, ErrInvalidSlot):
		h.metrics.ObserveBooking("invalid_slot")
		respond.NonFieldError(w, http.StatusBadRequest, "Selected slot is outside the therapist's availability.")
	case err != nil:
		h.metrics.ObserveBooking("error")
		h.logger.Error("booking failed", "user_id", userID, "therapist_id", therapistID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	default:
		h.metrics.ObserveBooking("created")
		respond.JSON(w, http.StatusCreated, appt)
	}
}

// List handles GET /appointments/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	page, pageSize := respond.PageParams(r, defaultPageSize, maxPageSize)

	appts, total, err := h.service.List(r.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("appointments list failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if appts == nil {
		appts = []Appointment{}
	}
	respond.JSON(w, http.StatusOK, respond.NewPage(r, total, page, pageSize, appts))
}

// Cancel handles PATCH /appointments/{id}/cancel/.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	apptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Appointment not found.")
		return
	}

	appt, err := h.service.Cancel(r.Context(), userID, apptID)
	if errors.Is(err, ErrNotFound) {
		respond.Detail(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	if err != nil {
		h.logger.Error("cancel failed", "user_id", userID, "appointment_id", apptID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Appointment cancelled.", "appointment": appt})
}

type noteInput struct {
	TherapistNote string `json:"therapist_note"`
}

// SetNote handles PATCH /appointments/{id}/notes/. Therapist only.
func (h *Handler) SetNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if middleware.Role(r.Context()) != auth.RoleTherapist {
		respond.Detail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}
	apptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Appointment not found.")
		return
	}

	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	appt, err := h.service.SetNote(r.Context(), userID, apptID, in.TherapistNote)
	if errors.Is(err, ErrNotFound) {
		respond.Detail(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	if err != nil {
		h.logger.Error("set note failed", "user_id", userID, "appointment_id", apptID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, appt)
}

// BookedSlots handles GET /appointments/therapist/{id}/booked-slots/?date={YYYY-MM-DD}.
func (h *Handler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	therapistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.FieldError(w, http.StatusBadRequest, "therapist", "A valid therapist id is required.")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		respond.FieldError(w, http.StatusBadRequest, "date", "This field is required.")
		return
	}

	slots, err := h.service.BookedSlots(r.Context(), therapistID, date)
	if err != nil {
		respond.FieldError(w, http.StatusBadRequest, "date", "Date must be in YYYY-MM-DD format.")
		return
	}
	if slots == nil {
		slots = []string{}
	}
	respond.JSON(w, http.StatusOK, map[string][]string{"booked_slots": slots})
}
