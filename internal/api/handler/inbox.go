package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/service"
	"github.com/go-chi/chi/v5"
)

// InboxHandler serves conversations and staff replies
type InboxHandler struct {
	inbox *service.InboxService
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(inbox *service.InboxService) *InboxHandler {
	return &InboxHandler{inbox: inbox}
}

// List lists the workspace's conversations
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	conversations, err := h.inbox.ListConversations(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, conversations)
}

// Messages lists the messages of one conversation
func (h *InboxHandler) Messages(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	messages, err := h.inbox.ListMessages(r.Context(), workspaceID, chi.URLParam(r, "conversationID"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, messages)
}

// Reply sends a staff reply and pauses automation for the conversation
func (h *InboxHandler) Reply(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ReplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	message, err := h.inbox.Reply(r.Context(), workspaceID, chi.URLParam(r, "conversationID"), input.Body)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, message)
}
