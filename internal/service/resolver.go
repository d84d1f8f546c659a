package service

import (
	"context"
	"strings"

	"github.com/Rrens/careops/internal/domain"
	"github.com/rs/zerolog/log"
)

// WorkspaceResolver turns a public link reference into a workspace ID
type WorkspaceResolver struct {
	workspaceRepo domain.WorkspaceRepository
}

// NewWorkspaceResolver creates a new resolver
func NewWorkspaceResolver(workspaceRepo domain.WorkspaceRepository) *WorkspaceResolver {
	return &WorkspaceResolver{workspaceRepo: workspaceRepo}
}

// Resolve returns wid unchecked when given, otherwise looks the slug up by exact match.
// Lookup errors, a missing row and empty input all report false.
func (r *WorkspaceResolver) Resolve(ctx context.Context, wid, slug string) (string, bool) {
	if wid = strings.TrimSpace(wid); wid != "" {
		return wid, true
	}
	if slug = strings.TrimSpace(slug); slug == "" {
		return "", false
	}

	workspace, err := r.workspaceRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("workspace slug lookup failed")
		return "", false
	}
	if workspace == nil || workspace.ID == "" {
		return "", false
	}
	return workspace.ID, true
}
