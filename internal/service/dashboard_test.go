package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, kolkata)

	starts := []time.Time{
		time.Date(2025, 3, 10, 0, 0, 0, 0, kolkata),        // start of today
		time.Date(2025, 3, 10, 23, 59, 59, 999e6, kolkata), // end of today, inclusive
		time.Date(2025, 3, 11, 0, 0, 0, 0, kolkata),        // tomorrow
		time.Date(2025, 3, 9, 23, 59, 0, 0, kolkata),       // yesterday
		time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),      // 01:30 on the 11th in Kolkata
		time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),       // 11:30 today in Kolkata
	}
	levels := []domain.StockLevel{{Quantity: 5, LowThreshold: 5}, {Quantity: 6, LowThreshold: 5}, {Quantity: 0, LowThreshold: 2}}
	directions := []domain.Direction{domain.DirectionIn, domain.DirectionOut, domain.DirectionIn, ""}

	stats := ComputeStats(now, 7, starts, levels, directions)

	assert.Equal(t, domain.DashboardStats{
		NewInquiries:     7,
		TodayBookings:    3,
		UpcomingBookings: 2,
		LowStock:         2,
		Unanswered:       2,
		CriticalAlerts:   4,
	}, stats)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(time.Now(), 0, nil, nil, nil)
	assert.Equal(t, domain.DashboardStats{}, stats)
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates reads", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewDashboardService(repo, new(MockWorkspaceRepository), "UTC")
		svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

		repo.On("CountContacts", mock.Anything, "w1").Return(int64(3), nil)
		repo.On("ListBookingStarts", mock.Anything, "w1").Return([]time.Time{time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)}, nil)
		repo.On("ListStockLevels", mock.Anything, "w1").Return([]domain.StockLevel{{Quantity: 1, LowThreshold: 5}}, nil)
		repo.On("LatestDirections", mock.Anything, "w1").Return([]domain.Direction{domain.DirectionIn}, nil)

		stats, err := svc.Stats(ctx, "w1", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.NewInquiries)
		assert.Equal(t, 1, stats.UpcomingBookings)
		assert.Equal(t, 2, stats.CriticalAlerts)
	})

	t.Run("any failed read fails the whole call", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewDashboardService(repo, new(MockWorkspaceRepository), "UTC")

		repo.On("CountContacts", mock.Anything, "w1").Return(int64(0), errors.New("boom"))
		repo.On("ListBookingStarts", mock.Anything, "w1").Return([]time.Time(nil), nil)
		repo.On("ListStockLevels", mock.Anything, "w1").Return([]domain.StockLevel(nil), nil)
		repo.On("LatestDirections", mock.Anything, "w1").Return([]domain.Direction(nil), nil)

		_, err := svc.Stats(ctx, "w1", time.UTC)
		assert.Error(t, err)
	})

	t.Run("missing direction column counts zero unanswered", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewDashboardService(repo, new(MockWorkspaceRepository), "UTC")

		repo.On("CountContacts", mock.Anything, "w1").Return(int64(4), nil)
		repo.On("ListBookingStarts", mock.Anything, "w1").Return([]time.Time(nil), nil)
		repo.On("ListStockLevels", mock.Anything, "w1").Return([]domain.StockLevel{{Quantity: 0, LowThreshold: 5}}, nil)
		repo.On("LatestDirections", mock.Anything, "w1").
			Return([]domain.Direction(nil), errors.New(`column m.direction does not exist (SQLSTATE 42703)`))

		stats, err := svc.Stats(ctx, "w1", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.NewInquiries)
		assert.Equal(t, 1, stats.LowStock)
		assert.Equal(t, 0, stats.Unanswered)
		assert.Equal(t, 1, stats.CriticalAlerts)
	})

	t.Run("timeout on directions still fails", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewDashboardService(repo, new(MockWorkspaceRepository), "UTC")

		repo.On("CountContacts", mock.Anything, "w1").Return(int64(0), nil)
		repo.On("ListBookingStarts", mock.Anything, "w1").Return([]time.Time(nil), nil)
		repo.On("ListStockLevels", mock.Anything, "w1").Return([]domain.StockLevel(nil), nil)
		repo.On("LatestDirections", mock.Anything, "w1").Return([]domain.Direction(nil), context.DeadlineExceeded)

		_, err := svc.Stats(ctx, "w1", time.UTC)
		require.Error(t, err)
		assert.Equal(t, domain.CodeStoreUnavailable, domain.CodeOf(err))
	})
}

func TestDashboardService_Location(t *testing.T) {
	workspaceRepo := new(MockWorkspaceRepository)
	svc := NewDashboardService(new(MockDashboardRepository), workspaceRepo, "Asia/Kolkata")
	workspaceRepo.On("GetByID", mock.Anything, "w1").Return(&domain.Workspace{ID: "w1", Timezone: "Europe/Berlin"}, nil)
	workspaceRepo.On("GetByID", mock.Anything, "w2").Return(&domain.Workspace{ID: "w2"}, nil)

	ctx := context.Background()
	assert.Equal(t, "America/New_York", svc.Location(ctx, "w1", "America/New_York").String())
	assert.Equal(t, "Europe/Berlin", svc.Location(ctx, "w1", "").String())
	assert.Equal(t, "Europe/Berlin", svc.Location(ctx, "w1", "Not/AZone").String())
	assert.Equal(t, "Asia/Kolkata", svc.Location(ctx, "w2", "").String())
}
