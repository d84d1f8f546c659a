package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/Rrens/careops/internal/config"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/security"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const slugAttempts = 5

const (
	msgChannelRequired       = "At least one communication channel is required (email or SMS)."
	msgCreateRequired        = "Workspace name and contact email are required."
	msgPasswordLength        = "Password must be between 8 and 72 characters."
	msgUnknownTimezone       = "Unknown timezone."
	msgCreateFirst           = "Create workspace first."
	msgBlockedNoChannel      = "Activation blocked: at least one communication channel is required."
	msgBlockedBookingSetup   = "Activation blocked: booking type and availability must be configured."
	msgInvalidLogin          = "Invalid workspace or password."
	msgSlugUnavailable       = "Could not allocate a workspace link, please retry."
	msgWorkspaceDoesNotExist = "Workspace not found."
)

// OnboardingService creates and activates workspaces
type OnboardingService struct {
	workspaceRepo domain.WorkspaceRepository
	tokens        *security.TokenManager
	cfg           config.IntakeConfig
	publicURL     string
	suffix        func() int
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(workspaceRepo domain.WorkspaceRepository, tokens *security.TokenManager, cfg config.IntakeConfig, publicURL string) *OnboardingService {
	return &OnboardingService{
		workspaceRepo: workspaceRepo,
		tokens:        tokens,
		cfg:           cfg,
		publicURL:     strings.TrimRight(publicURL, "/"),
		suffix:        func() int { return rand.Intn(1000) },
	}
}

// Create creates an inactive workspace and returns it with an access token
func (s *OnboardingService) Create(ctx context.Context, in domain.WorkspaceCreate) (*domain.WorkspaceSession, error) {
	if !in.EmailChannel && !in.SMSChannel {
		return nil, domain.NewError(domain.CodeValidation, msgChannelRequired)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.Timezone = strings.TrimSpace(in.Timezone)
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "Password" {
			return nil, domain.NewError(domain.CodeValidation, msgPasswordLength)
		}
		return nil, domain.NewError(domain.CodeValidation, msgCreateRequired)
	}

	if in.Timezone == "" {
		in.Timezone = s.cfg.DefaultTimezone
	}
	if _, err := time.LoadLocation(in.Timezone); err != nil {
		return nil, domain.NewError(domain.CodeValidation, msgUnknownTimezone)
	}

	base, err := slugify(in.Name, "workspace")
	if err != nil {
		return nil, fmt.Errorf("failed to build slug: %w", err)
	}

	workspace := &domain.Workspace{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Timezone:     in.Timezone,
		ContactEmail: in.ContactEmail,
		IsActive:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if in.Password != "" {
		hash, err := security.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		workspace.PasswordHash = hash
	}

	created := false
	for attempt := 0; attempt < slugAttempts && !created; attempt++ {
		workspace.Slug = fmt.Sprintf("%s-%d", base, s.suffix())
		err := s.workspaceRepo.Create(ctx, workspace)
		switch {
		case err == nil:
			created = true
		case errors.Is(err, domain.ErrSlugTaken):
			log.Debug().Str("slug", workspace.Slug).Msg("slug taken, retrying")
		default:
			return nil, domain.StoreFailure(err)
		}
	}
	if !created {
		return nil, domain.NewError(domain.CodeConflict, msgSlugUnavailable)
	}

	log.Info().Str("workspace_id", workspace.ID).Str("slug", workspace.Slug).Msg("workspace created")
	return s.session(workspace)
}

// Activate moves a created workspace to active once the checklist allows it.
// A blocked attempt leaves the workspace untouched.
func (s *OnboardingService) Activate(ctx context.Context, workspaceID string, checklist domain.ActivationChecklist) (*domain.Workspace, error) {
	if workspaceID == "" {
		return nil, domain.NewError(domain.CodeActivationBlocked, msgCreateFirst)
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	if workspace == nil {
		return nil, domain.NewError(domain.CodeActivationBlocked, msgCreateFirst)
	}

	if !checklist.HasChannel() {
		return nil, domain.NewError(domain.CodeActivationBlocked, msgBlockedNoChannel)
	}
	if !checklist.HasBookingType || !checklist.HasAvailability {
		return nil, domain.NewError(domain.CodeActivationBlocked, msgBlockedBookingSetup)
	}

	if err := s.workspaceRepo.Activate(ctx, workspaceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.CodeActivationBlocked, msgCreateFirst)
		}
		return nil, domain.StoreFailure(err)
	}

	workspace.IsActive = true
	log.Info().Str("workspace_id", workspaceID).Msg("workspace activated")
	return workspace, nil
}

// Login exchanges a slug and owner password for a fresh access token
func (s *OnboardingService) Login(ctx context.Context, in domain.WorkspaceLogin) (*domain.WorkspaceSession, error) {
	workspace, err := s.workspaceRepo.GetBySlug(ctx, strings.TrimSpace(in.Slug))
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	if workspace == nil || !security.CheckPassword(workspace.PasswordHash, in.Password) {
		return nil, domain.NewError(domain.CodeUnauthorized, msgInvalidLogin)
	}
	return s.session(workspace)
}

// Get returns the workspace together with its public form links
func (s *OnboardingService) Get(ctx context.Context, workspaceID string) (*domain.WorkspaceDetails, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	if workspace == nil {
		return nil, domain.NewError(domain.CodeNotFound, msgWorkspaceDoesNotExist)
	}

	return &domain.WorkspaceDetails{
		Workspace: workspace,
		Links:     s.links(workspace.ID),
	}, nil
}

func (s *OnboardingService) links(workspaceID string) domain.WorkspaceLinks {
	q := "?wid=" + url.QueryEscape(workspaceID)
	return domain.WorkspaceLinks{
		Contact: s.publicURL + "/public/contact" + q,
		Booking: s.publicURL + "/public/book" + q,
	}
}

func (s *OnboardingService) session(workspace *domain.Workspace) (*domain.WorkspaceSession, error) {
	token, err := s.tokens.Generate(workspace.ID, workspace.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to issue workspace token: %w", err)
	}
	return &domain.WorkspaceSession{
		Workspace:   workspace,
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}
