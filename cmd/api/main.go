package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/riddhima-gkmit/mindease-platform/internal/api/router"
	"github.com/riddhima-gkmit/mindease-platform/internal/appointments"
	"github.com/riddhima-gkmit/mindease-platform/internal/auth"
	"github.com/riddhima-gkmit/mindease-platform/internal/availability"
	appconfig "github.com/riddhima-gkmit/mindease-platform/internal/config"
	"github.com/riddhima-gkmit/mindease-platform/internal/mood"
	"github.com/riddhima-gkmit/mindease-platform/internal/notify"
	"github.com/riddhima-gkmit/mindease-platform/internal/observability/metrics"
	"github.com/riddhima-gkmit/mindease-platform/internal/recommendations"
	"github.com/riddhima-gkmit/mindease-platform/internal/therapists"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting mindease API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, booked-slot caching disabled", "error", err)
		rdb = nil
	}

	apiMetrics := metrics.NewAPIMetrics(prometheus.DefaultRegisterer)

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger.Component("sendgrid")); sg != nil {
		emailSender = sg
	} else {
		emailSender = notify.NewStubEmailSender(logger.Component("email"))
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, tokens, emailSender, cfg.PublicBaseURL, logger.Component("auth"))

	moodRepo := mood.NewRepository(pool)
	therapistsRepo := therapists.NewRepository(pool)
	availRepo := availability.NewRepository(pool)
	recsRepo := recommendations.NewRepository(pool)

	apptRepo := appointments.NewRepository(pool)
	apptCache := appointments.NewBookedSlotsCache(apptRepo, rdb, cfg.BookedSlotsTTL, logger.Component("booked_slots"))
	apptService := appointments.NewService(apptRepo, availRepo, apptCache, emailSender, logger.Component("appointments"))

	r := router.New(&router.Config{
		Logger:             logger,
		Tokens:             tokens,
		AuthHandler:        auth.NewHandler(authService, apiMetrics, logger.Component("auth")),
		MoodHandler:        mood.NewHandler(moodRepo, apiMetrics, logger.Component("mood")),
		TherapistsHandler:  therapists.NewHandler(therapistsRepo, logger.Component("therapists")),
		Availability:       availability.NewHandler(availRepo, cfg.BookingHorizonDays, logger.Component("availability")),
		Appointments:       appointments.NewHandler(apptService, apiMetrics, logger.Component("appointments")),
		Recommendations:    recommendations.NewHandler(recsRepo, moodRepo, logger.Component("recommendations")),
		Metrics:            apiMetrics,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
