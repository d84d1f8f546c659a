package domain

import (
	"context"
	"time"
)

// Workspace represents a tenant: one business account
type Workspace struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Timezone     string    `json:"timezone"`
	ContactEmail string    `json:"contact_email"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// WorkspaceCreate represents onboarding input
type WorkspaceCreate struct {
	Name         string `json:"name" validate:"required,max=255"`
	ContactEmail string `json:"contact_email" validate:"required,email,max=255"`
	Timezone     string `json:"timezone" validate:"omitempty,max=64"`
	Password     string `json:"password" validate:"omitempty,min=8,max=72"`
	EmailChannel bool   `json:"email_channel"`
	SMSChannel   bool   `json:"sms_channel"`
}

// ActivationChecklist holds the setup flags the owner reports at activation time
type ActivationChecklist struct {
	EmailChannel    bool `json:"email_channel"`
	SMSChannel      bool `json:"sms_channel"`
	HasBookingType  bool `json:"has_booking_type"`
	HasAvailability bool `json:"has_availability"`
}

// HasChannel reports whether at least one communication channel is enabled
func (c ActivationChecklist) HasChannel() bool {
	return c.EmailChannel || c.SMSChannel
}

// WorkspaceLogin exchanges an owner password for a workspace access token
type WorkspaceLogin struct {
	Slug     string `json:"slug" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// WorkspaceSession is returned after onboarding or login
type WorkspaceSession struct {
	Workspace   *Workspace `json:"workspace"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"`
}

// WorkspaceLinks are the public form URLs handed out to customers
type WorkspaceLinks struct {
	Contact string `json:"contact"`
	Booking string `json:"booking"`
}

// WorkspaceDetails is the staff view of the current workspace
type WorkspaceDetails struct {
	Workspace *Workspace     `json:"workspace"`
	Links     WorkspaceLinks `json:"links"`
}

// WorkspaceRepository defines the interface for workspace storage
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*Workspace, error)
	Activate(ctx context.Context, id string) error
}
