package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/respond"
	"github.com/riddhima-gkmit/mindease-platform/internal/appointments"
	"github.com/riddhima-gkmit/mindease-platform/internal/auth"
	"github.com/riddhima-gkmit/mindease-platform/internal/availability"
	httpmiddleware "github.com/riddhima-gkmit/mindease-platform/internal/http/middleware"
	"github.com/riddhima-gkmit/mindease-platform/internal/mood"
	"github.com/riddhima-gkmit/mindease-platform/internal/observability/metrics"
	"github.com/riddhima-gkmit/mindease-platform/internal/recommendations"
	"github.com/riddhima-gkmit/mindease-platform/internal/therapists"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Tokens             httpmiddleware.TokenVerifier
	AuthHandler        *auth.Handler
	MoodHandler        *mood.Handler
	TherapistsHandler  *therapists.Handler
	Availability       *availability.Handler
	Appointments       *appointments.Handler
	Recommendations    *recommendations.Handler
	Metrics            *metrics.APIMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured. Paths are written
// Django-style with trailing slashes; StripSlashes makes both spellings
// resolve.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.StripSlashes)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(httpmiddleware.Metrics(cfg.Metrics))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		// Public endpoints
		api.Post("/auth/register", cfg.AuthHandler.Register)
		api.Post("/auth/login", cfg.AuthHandler.Login)
		api.Post("/token/refresh", cfg.AuthHandler.Refresh)
		api.Get("/auth/verify-email/{uid}/{token}", cfg.AuthHandler.VerifyEmail)
		api.Post("/auth/password-reset", cfg.AuthHandler.RequestPasswordReset)
		api.Post("/auth/password-reset-confirm/{uid}/{token}", cfg.AuthHandler.ConfirmPasswordReset)
		api.Get("/therapists", cfg.TherapistsHandler.List)

		// Authenticated endpoints
		api.Group(func(authed chi.Router) {
			authed.Use(httpmiddleware.RequireAuth(cfg.Tokens))

			authed.Get("/auth/profile", cfg.AuthHandler.Profile)
			authed.Put("/auth/profile", cfg.AuthHandler.UpdateProfile)

			authed.Route("/mood", func(m chi.Router) {
				m.Get("/", cfg.MoodHandler.List)
				m.Post("/", cfg.MoodHandler.Create)
				m.Get("/chart-data", cfg.MoodHandler.ChartData)
				m.Put("/{id}", cfg.MoodHandler.Update)
			})

			authed.Get("/therapists/availability/{id}", cfg.Availability.ListForTherapist)
			authed.Get("/therapists/availability/{id}/dates", cfg.Availability.BookableDates)

			authed.Route("/appointments", func(a chi.Router) {
				a.Get("/", cfg.Appointments.List)
				a.Post("/", cfg.Appointments.Book)
				a.Get("/therapist/{id}/booked-slots", cfg.Appointments.BookedSlots)
				a.Patch("/{id}/cancel", cfg.Appointments.Cancel)
				a.Patch("/{id}/notes", cfg.Appointments.SetNote)
			})

			authed.Get("/recommendations", cfg.Recommendations.List)

			// Therapist self-service
			authed.Group(func(tr chi.Router) {
				tr.Use(httpmiddleware.RequireRole(auth.RoleTherapist))
				tr.Get("/therapists/profile", cfg.TherapistsHandler.GetProfile)
				tr.Post("/therapists/profile", cfg.TherapistsHandler.CreateProfile)
				tr.Put("/therapists/profile", cfg.TherapistsHandler.UpdateProfile)
				tr.Post("/therapists/availability/create", cfg.Availability.Create)
			})
		})
	})

	return r
}
