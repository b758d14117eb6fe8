package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL = %s, want 15m", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("RefreshTokenTTL = %s, want 168h", cfg.RefreshTokenTTL)
	}
	if cfg.BookingHorizonDays != 14 {
		t.Errorf("BookingHorizonDays = %d, want 14", cfg.BookingHorizonDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.mindease.io, https://staging.mindease.io")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Errorf("AccessTokenTTL = %s, want 5m", cfg.AccessTokenTTL)
	}
	if !cfg.RedisTLS {
		t.Error("RedisTLS should be true")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://staging.mindease.io" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("BOOKING_HORIZON_DAYS", "fortnight")
	t.Setenv("BOOKED_SLOTS_TTL", "soon")

	cfg := Load()

	if cfg.BookingHorizonDays != 14 {
		t.Errorf("BookingHorizonDays = %d, want default 14", cfg.BookingHorizonDays)
	}
	if cfg.BookedSlotsTTL != 30*time.Second {
		t.Errorf("BookedSlotsTTL = %s, want default 30s", cfg.BookedSlotsTTL)
	}
}
