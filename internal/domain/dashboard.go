package domain

import (
	"context"
	"time"
)

// DashboardStats are the counters shown on the staff dashboard
type DashboardStats struct {
	NewInquiries     int64 `json:"newInquiries"`
	TodayBookings    int   `json:"todayBookings"`
	UpcomingBookings int   `json:"upcomingBookings"`
	LowStock         int   `json:"lowStock"`
	Unanswered       int   `json:"unanswered"`
	CriticalAlerts   int   `json:"criticalAlerts"`
}

// DashboardRepository exposes the raw reads the dashboard is computed from
type DashboardRepository interface {
	CountContacts(ctx context.Context, workspaceID string) (int64, error)
	ListBookingStarts(ctx context.Context, workspaceID string) ([]time.Time, error)
	ListStockLevels(ctx context.Context, workspaceID string) ([]StockLevel, error)
	// LatestDirections returns the direction of the newest message of every conversation
	LatestDirections(ctx context.Context, workspaceID string) ([]Direction, error)
}
