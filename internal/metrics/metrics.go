package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careops",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careops",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	// Public form submissions
	IntakeSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careops",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Public form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// Optional columns dropped after a rejected insert
	SchemaFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careops",
			Subsystem: "schema",
			Name:      "fallbacks_total",
			Help:      "Inserts retried without an optional column",
		},
		[]string{"table", "column"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordIntake records the outcome of a public form submission
func RecordIntake(kind, outcome string) {
	IntakeSubmissionsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordSchemaFallback records a dropped optional column
func RecordSchemaFallback(table, column string) {
	SchemaFallbacksTotal.WithLabelValues(table, column).Inc()
}
