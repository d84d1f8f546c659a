package service

import (
	"context"
	"errors"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DashboardService computes the staff dashboard counters
type DashboardService struct {
	dashboardRepo domain.DashboardRepository
	workspaceRepo domain.WorkspaceRepository
	defaultLoc    *time.Location
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo domain.DashboardRepository, workspaceRepo domain.WorkspaceRepository, defaultTimezone string) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		workspaceRepo: workspaceRepo,
		defaultLoc:    loadLocation(defaultTimezone, time.UTC),
		now:           time.Now,
	}
}

// Location picks the caller's timezone: explicit name, then the workspace's, then the default
func (s *DashboardService) Location(ctx context.Context, workspaceID, tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err == nil && workspace != nil {
		return loadLocation(workspace.Timezone, s.defaultLoc)
	}
	return s.defaultLoc
}

// Stats runs the four reads concurrently and computes the counters from scratch
func (s *DashboardService) Stats(ctx context.Context, workspaceID string, loc *time.Location) (*domain.DashboardStats, error) {
	var (
		contacts   int64
		starts     []time.Time
		levels     []domain.StockLevel
		directions []domain.Direction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, err = s.dashboardRepo.CountContacts(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		starts, err = s.dashboardRepo.ListBookingStarts(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		levels, err = s.dashboardRepo.ListStockLevels(gctx, workspaceID)
		return err
	})
	// Unanswered is best-effort: a schema without message directions counts zero.
	g.Go(func() error {
		var err error
		directions, err = s.dashboardRepo.LatestDirections(gctx, workspaceID)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("latest message directions unavailable")
			directions, err = nil, nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.StoreFailure(err)
	}

	stats := ComputeStats(s.now().In(loc), contacts, starts, levels, directions)
	return &stats, nil
}

// ComputeStats derives the dashboard counters. Today is the inclusive calendar day of now
// in now's location; upcoming bookings start strictly after the end of today.
func ComputeStats(now time.Time, contacts int64, starts []time.Time, levels []domain.StockLevel, directions []domain.Direction) domain.DashboardStats {
	startOfDay, endOfDay := dayBounds(now)

	stats := domain.DashboardStats{NewInquiries: contacts}
	for _, t := range starts {
		switch {
		case t.After(endOfDay):
			stats.UpcomingBookings++
		case !t.Before(startOfDay):
			stats.TodayBookings++
		}
	}
	for _, l := range levels {
		if l.IsLow() {
			stats.LowStock++
		}
	}
	for _, d := range directions {
		if d == domain.DirectionIn {
			stats.Unanswered++
		}
	}
	stats.CriticalAlerts = stats.LowStock + stats.Unanswered
	return stats
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Millisecond), now.Location())
	return start, end
}
