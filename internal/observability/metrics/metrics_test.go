package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestAPIMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)
	m.ObserveRequest("POST", "/api/v1/appointments/", "201", 0.05)
	m.ObserveBooking("created")
	m.ObserveMoodEntry()
	m.ObserveTokenRefresh("ok")
}

func TestAPIMetricsNilSafe(t *testing.T) {
	var m *APIMetrics
	m.ObserveRequest("GET", "/health", "200", 0.01)
	m.ObserveBooking("slot_taken")
	m.ObserveMoodEntry()
	m.ObserveTokenRefresh("failed")
}
