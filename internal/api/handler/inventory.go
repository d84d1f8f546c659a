package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/service"
)

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List lists inventory items with their low-stock flag
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.inventory.List(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, items)
}

// Create adds an inventory item
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InventoryCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	item, err := h.inventory.Add(r.Context(), workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, item)
}
