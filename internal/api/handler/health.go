package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/careops/internal/api/response"
)

// Pinger is anything whose connectivity can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including database connectivity.
// The cache is optional and reported without failing readiness.
func ReadyCheck(db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.ServiceUnavailable(w, "database not ready")
			return
		}

		status := map[string]string{
			"status":   "ready",
			"database": "ok",
		}
		if cache != nil {
			status["cache"] = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				status["cache"] = "unavailable"
			}
		}

		response.OK(w, status)
	}
}
