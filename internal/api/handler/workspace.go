package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/service"
)

// WorkspaceHandler handles onboarding and activation endpoints
type WorkspaceHandler struct {
	onboarding *service.OnboardingService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(onboarding *service.OnboardingService) *WorkspaceHandler {
	return &WorkspaceHandler{onboarding: onboarding}
}

// Create handles workspace creation
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.WorkspaceCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	session, err := h.onboarding.Create(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, session)
}

// Login exchanges an owner password for a workspace token
func (h *WorkspaceHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.WorkspaceLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	session, err := h.onboarding.Login(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, session)
}

// Get returns the current workspace and its public links
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	details, err := h.onboarding.Get(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, details)
}

// Activate checks the setup checklist and activates the workspace
func (h *WorkspaceHandler) Activate(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var checklist domain.ActivationChecklist
	if err := json.NewDecoder(r.Body).Decode(&checklist); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	workspace, err := h.onboarding.Activate(r.Context(), workspaceID, checklist)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}
