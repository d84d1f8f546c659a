package service

import (
	"context"
	"strings"

	"github.com/Rrens/careops/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultQuantity     = 10
	defaultLowThreshold = 5

	msgItemRequired = "Item name is required."
	msgItemNegative = "Quantity and threshold must not be negative."
)

// InventoryService manages inventory items and their low-stock flag
type InventoryService struct {
	inventoryRepo domain.InventoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo domain.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// List returns the workspace's items with LowStock filled in
func (s *InventoryService) List(ctx context.Context, workspaceID string) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	for i := range items {
		items[i].LowStock = domain.StockLevel{Quantity: items[i].Quantity, LowThreshold: items[i].LowThreshold}.IsLow()
	}
	return items, nil
}

// Add creates an item, defaulting quantity to 10 and threshold to 5
func (s *InventoryService) Add(ctx context.Context, workspaceID string, in domain.InventoryCreate) (*domain.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewError(domain.CodeValidation, msgItemRequired)
	}

	item := &domain.InventoryItem{
		ID:           uuid.NewString(),
		WorkspaceID:  workspaceID,
		Name:         name,
		Quantity:     defaultQuantity,
		LowThreshold: defaultLowThreshold,
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.LowThreshold != nil {
		item.LowThreshold = *in.LowThreshold
	}
	if item.Quantity < 0 || item.LowThreshold < 0 {
		return nil, domain.NewError(domain.CodeValidation, msgItemNegative)
	}

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, domain.StoreFailure(err)
	}

	item.LowStock = domain.StockLevel{Quantity: item.Quantity, LowThreshold: item.LowThreshold}.IsLow()
	return item, nil
}
