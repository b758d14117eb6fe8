package therapists

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler exposes the therapist directory and self-profile endpoints.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

// NewHandler creates the therapists handler.
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /therapists/ (public directory, approved only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := respond.PageParams(r, defaultPageSize, maxPageSize)
	specialization := r.URL.Query().Get("specialization")

	profiles, total, err := h.repo.ListApproved(r.Context(), specialization, pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("therapist list failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if profiles == nil {
		profiles = []Profile{}
	}
	respond.JSON(w, http.StatusOK, respond.NewPage(r, total, page, pageSize, profiles))
}

// GetProfile handles GET /therapists/profile/ for the logged-in therapist.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	p, err := h.repo.GetByUserID(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		respond.Detail(w, http.StatusNotFound, "Therapist profile not found.")
		return
	}
	if err != nil {
		h.logger.Error("therapist profile fetch failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// CreateProfile handles POST /therapists/profile/.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	in, fields := decodeProfileInput(r)
	if len(fields) > 0 {
		respond.FieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	err := h.repo.Create(r.Context(), userID, in)
	if errors.Is(err, ErrProfileExists) {
		respond.NonFieldError(w, http.StatusBadRequest, "Therapist profile already exists.")
		return
	}
	if err != nil {
		h.logger.Error("therapist profile create failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"message": "Therapist profile created. Pending approval."})
}

// UpdateProfile handles PUT /therapists/profile/.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	in, fields := decodeProfileInput(r)
	if len(fields) > 0 {
		respond.FieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	err := h.repo.Update(r.Context(), userID, in)
	if errors.Is(err, ErrNotFound) {
		respond.Detail(w, http.StatusNotFound, "Therapist profile not found.")
		return
	}
	if err != nil {
		h.logger.Error("therapist profile update failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Therapist profile updated."})
}

func decodeProfileInput(r *http.Request) (ProfileInput, map[string][]string) {
	var in ProfileInput
	fields := map[string][]string{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fields["non_field_errors"] = append(fields["non_field_errors"], "Invalid JSON body.")
		return in, fields
	}
	if in.Specialization == "" {
		fields["specialization"] = append(fields["specialization"], "This field is required.")
	}
	if in.ExperienceYears < 0 {
		fields["experience_years"] = append(fields["experience_years"], "Experience years cannot be negative.")
	}
	if !ValidMode(in.ConsultationMode) {
		fields["consultation_mode"] = append(fields["consultation_mode"], "Consultation mode must be online, offline, or both.")
	}
	return in, fields
}
