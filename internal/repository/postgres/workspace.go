package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/careops/internal/domain"
	"github.com/jackc/pgx/v5"
)

const pgUniqueViolation = "23505"

// WorkspaceRepository handles workspace data access
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, slug, name, timezone, contact_email, is_active, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		workspace.ID,
		workspace.Slug,
		workspace.Name,
		workspace.Timezone,
		workspace.ContactEmail,
		workspace.IsActive,
		nullable(workspace.PasswordHash),
		workspace.CreatedAt,
	)
	if err != nil {
		if hasPgCode(err, pgUniqueViolation) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	return r.getOne(ctx, "id", id)
}

// GetBySlug retrieves a workspace by its exact slug
func (r *WorkspaceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *WorkspaceRepository) getOne(ctx context.Context, column, value string) (*domain.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, name, COALESCE(timezone, ''), COALESCE(contact_email, ''),
		       is_active, COALESCE(password_hash, ''), created_at
		FROM workspaces
		WHERE %s = $1
	`, pgx.Identifier{column}.Sanitize())

	var workspace domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, value).Scan(
		&workspace.ID,
		&workspace.Slug,
		&workspace.Name,
		&workspace.Timezone,
		&workspace.ContactEmail,
		&workspace.IsActive,
		&workspace.PasswordHash,
		&workspace.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// Activate marks a workspace active
func (r *WorkspaceRepository) Activate(ctx context.Context, id string) error {
	query := `UPDATE workspaces SET is_active = true WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to activate workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
