package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/careops/internal/domain"
	"github.com/google/uuid"
)

// InventoryRepository handles inventory data access
type InventoryRepository struct {
	db *DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListByWorkspace lists inventory items by name
func (r *InventoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT id, workspace_id, name, quantity, low_threshold
		FROM inventory_items
		WHERE workspace_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.WorkspaceID, &item.Name, &item.Quantity, &item.LowThreshold); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}

	return items, nil
}

// Create inserts an inventory item
func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO inventory_items (id, workspace_id, name, quantity, low_threshold)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query, item.ID, item.WorkspaceID, item.Name, item.Quantity, item.LowThreshold)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}
