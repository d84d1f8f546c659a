package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/schema"
)

// DashboardRepository runs the reads behind the dashboard counters
type DashboardRepository struct {
	db   *DB
	caps capabilitySource
}

// NewDashboardRepository creates a new dashboard repository. caps may be nil.
func NewDashboardRepository(db *DB, caps capabilitySource) *DashboardRepository {
	return &DashboardRepository{db: db, caps: caps}
}

// CountContacts counts every contact of the workspace
func (r *DashboardRepository) CountContacts(ctx context.Context, workspaceID string) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM contacts WHERE workspace_id = $1`, workspaceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return n, nil
}

// ListBookingStarts returns the start time of every booking
func (r *DashboardRepository) ListBookingStarts(ctx context.Context, workspaceID string) ([]time.Time, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT start_at FROM bookings WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking starts: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan booking start: %w", err)
		}
		starts = append(starts, t)
	}
	return starts, rows.Err()
}

// ListStockLevels returns quantity and threshold of every inventory item
func (r *DashboardRepository) ListStockLevels(ctx context.Context, workspaceID string) ([]domain.StockLevel, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT quantity, low_threshold FROM inventory_items WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		var s domain.StockLevel
		if err := rows.Scan(&s.Quantity, &s.LowThreshold); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels = append(levels, s)
	}
	return levels, rows.Err()
}

// LatestDirections returns the direction of the newest message per conversation in one query.
// Conversations without messages are not returned, and neither is anything when the
// messages carry no direction or conversations no workspace.
func (r *DashboardRepository) LatestDirections(ctx context.Context, workspaceID string) ([]domain.Direction, error) {
	query, ok := latestDirectionsQuery(currentCapabilities(r.caps))
	if !ok {
		return nil, nil
	}

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		if hasPgCode(err, pgUndefinedColumn) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest message directions: %w", err)
	}
	defer rows.Close()

	var directions []domain.Direction
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan direction: %w", err)
		}
		directions = append(directions, domain.Direction(d))
	}
	return directions, rows.Err()
}

func latestDirectionsQuery(caps *schema.Capabilities) (string, bool) {
	if caps.Missing("messages", "direction") || caps.Missing("conversations", "workspace_id") {
		return "", false
	}
	return `
		SELECT DISTINCT ON (m.conversation_id) COALESCE(m.direction, '')
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.workspace_id = $1
		ORDER BY m.conversation_id, m.created_at DESC
	`, true
}
