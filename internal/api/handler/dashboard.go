package handler

import (
	"net/http"

	"github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/service"
)

// DashboardHandler serves the dashboard counters
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /dashboard?tz=<IANA name>
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	loc := h.dashboard.Location(r.Context(), workspaceID, r.URL.Query().Get("tz"))
	stats, err := h.dashboard.Stats(r.Context(), workspaceID, loc)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, stats)
}
