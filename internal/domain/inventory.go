package domain

import "context"

// InventoryItem is a tracked supply with a low-stock alert threshold
type InventoryItem struct {
	ID           string `json:"id"`
	WorkspaceID  string `json:"workspace_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	LowThreshold int    `json:"low_threshold"`
	LowStock     bool   `json:"low_stock"`
}

// InventoryCreate represents a new inventory item
type InventoryCreate struct {
	Name         string `json:"name" validate:"required,max=255"`
	Quantity     *int   `json:"quantity" validate:"omitempty,min=0"`
	LowThreshold *int   `json:"low_threshold" validate:"omitempty,min=0"`
}

// StockLevel is the pair the low-stock rule looks at
type StockLevel struct {
	Quantity     int
	LowThreshold int
}

// IsLow reports whether quantity is at or below the threshold
func (s StockLevel) IsLow() bool {
	return s.Quantity <= s.LowThreshold
}

// InventoryRepository defines the interface for inventory storage
type InventoryRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]InventoryItem, error)
	Create(ctx context.Context, item *InventoryItem) error
}
