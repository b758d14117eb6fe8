package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/internal/observability/metrics"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	namePattern  = regexp.MustCompile(`^[\p{L}][\p{L} '-]*$`)
)

// Handler exposes the auth HTTP endpoints.
type Handler struct {
	service *Service
	metrics *metrics.APIMetrics
	logger  *logging.Logger
}

// NewHandler creates the auth handler. m may be nil.
func NewHandler(service *Service, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, metrics: m, logger: logger}
}

// Register handles POST /auth/register/.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if fields := validateRegister(in); len(fields) > 0 {
		respond.FieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	u, err := h.service.Register(r.Context(), in)
	if errors.Is(err, ErrEmailTaken) {
		respond.FieldError(w, http.StatusBadRequest, "email", "A user with this email already exists.")
		return
	}
	if err != nil {
		h.logger.Error("registration failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful. Please verify your email.",
		"user":    u,
	})
}

func validateRegister(in RegisterInput) map[string][]string {
	fields := map[string][]string{}
	if !emailPattern.MatchString(in.Email) {
		fields["email"] = append(fields["email"], "Enter a valid email address.")
	}
	if len(in.Password) < 8 {
		fields["password"] = append(fields["password"], "Password must be at least 8 characters.")
	}
	if in.FirstName == "" || !namePattern.MatchString(in.FirstName) {
		fields["first_name"] = append(fields["first_name"], "Name may only contain letters, spaces, apostrophes, and hyphens.")
	}
	if in.LastName != "" && !namePattern.MatchString(in.LastName) {
		fields["last_name"] = append(fields["last_name"], "Name may only contain letters, spaces, apostrophes, and hyphens.")
	}
	if !ValidRole(in.Role) {
		fields["role"] = append(fields["role"], "Role must be patient or therapist.")
	}
	return fields
}

// Login handles POST /auth/login/.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.service.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		respond.NonFieldError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	if err != nil {
		h.logger.Error("login failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

// Refresh handles POST /token/refresh/.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Refresh) == "" {
		respond.FieldError(w, http.StatusBadRequest, "refresh", "This field is required.")
		return
	}

	access, err := h.service.Refresh(r.Context(), in.Refresh)
	if errors.Is(err, ErrInvalidToken) {
		h.metrics.ObserveTokenRefresh("rejected")
		respond.Detail(w, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}
	if err != nil {
		h.metrics.ObserveTokenRefresh("error")
		h.logger.Error("token refresh failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.metrics.ObserveTokenRefresh("ok")
	respond.JSON(w, http.StatusOK, map[string]string{"access": access})
}

// Profile handles GET /auth/profile/.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	u, err := h.service.Profile(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		respond.Detail(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.logger.Error("profile fetch failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// UpdateProfile handles PUT /auth/profile/.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var in UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	u, err := h.service.UpdateProfile(r.Context(), userID, in)
	if errors.Is(err, ErrUserNotFound) {
		respond.Detail(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.logger.Error("profile update failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// VerifyEmail handles GET /auth/verify-email/{uid}/{token}/.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	token := chi.URLParam(r, "token")
	err := h.service.VerifyEmail(r.Context(), uid, token)
	if errors.Is(err, ErrUserNotFound) {
		respond.Error(w, http.StatusBadRequest, "Invalid or expired verification link.")
		return
	}
	if err != nil {
		h.logger.Error("email verification failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully."})
}

// RequestPasswordReset handles POST /auth/password-reset/.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !emailPattern.MatchString(in.Email) {
		respond.FieldError(w, http.StatusBadRequest, "email", "Enter a valid email address.")
		return
	}
	if err := h.service.RequestPasswordReset(r.Context(), in.Email); err != nil {
		h.logger.Error("password reset request failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	// Same response whether or not the account exists.
	respond.JSON(w, http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent."})
}

// ConfirmPasswordReset handles POST /auth/password-reset-confirm/{uid}/{token}/.
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var in struct {
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.NewPassword) < 8 {
		respond.FieldError(w, http.StatusBadRequest, "new_password", "Password must be at least 8 characters.")
		return
	}
	err := h.service.ConfirmPasswordReset(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "token"), in.NewPassword)
	if errors.Is(err, ErrUserNotFound) {
		respond.Error(w, http.StatusBadRequest, "Invalid or expired reset link.")
		return
	}
	if err != nil {
		h.logger.Error("password reset confirm failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Password has been reset."})
}
