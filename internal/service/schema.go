package service

import (
	"context"
	"fmt"

	"github.com/Rrens/careops/internal/schema"
	"github.com/rs/zerolog/log"
)

// intakeTables are the tables written through the schema-tolerant writer
var intakeTables = []string{"contacts", "bookings", "conversations", "messages"}

// CapabilityLoader reads the live column layout
type CapabilityLoader interface {
	Load(ctx context.Context, tables []string) (*schema.Capabilities, error)
}

// CapabilityCache persists a loaded layout between processes
type CapabilityCache interface {
	Get(ctx context.Context) (*schema.Capabilities, error)
	Set(ctx context.Context, caps *schema.Capabilities) error
}

// SchemaService keeps the writer's capability descriptor current
type SchemaService struct {
	loader CapabilityLoader
	cache  CapabilityCache
	writer *schema.Writer
}

// NewSchemaService creates a new schema service. cache may be nil.
func NewSchemaService(loader CapabilityLoader, cache CapabilityCache, writer *schema.Writer) *SchemaService {
	return &SchemaService{loader: loader, cache: cache, writer: writer}
}

// Init installs the cached descriptor, loading and caching it on a miss.
// Failures leave the writer on error-driven fallback only.
func (s *SchemaService) Init(ctx context.Context) (*schema.Capabilities, error) {
	if s.cache != nil {
		caps, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("capability cache read failed")
		}
		if caps != nil {
			s.writer.SetCapabilities(caps)
			return caps, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh reloads the descriptor from the database and updates the cache
func (s *SchemaService) Refresh(ctx context.Context) (*schema.Capabilities, error) {
	caps, err := s.loader.Load(ctx, intakeTables)
	if err != nil {
		return nil, fmt.Errorf("failed to load capabilities: %w", err)
	}

	s.writer.SetCapabilities(caps)
	if s.cache != nil {
		if err := s.cache.Set(ctx, caps); err != nil {
			log.Warn().Err(err).Msg("capability cache write failed")
		}
	}

	log.Info().Strs("tables", caps.Tables()).Msg("schema capabilities loaded")
	return caps, nil
}
