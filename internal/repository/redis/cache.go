package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/careops/internal/schema"
	"github.com/redis/go-redis/v9"
)

const capabilitiesKey = "schema:capabilities"

// CapabilityCache stores the table capability descriptor in Redis
type CapabilityCache struct {
	client *Client
	ttl    time.Duration
}

// NewCapabilityCache creates a new capability cache
func NewCapabilityCache(client *Client, ttl time.Duration) *CapabilityCache {
	return &CapabilityCache{client: client, ttl: ttl}
}

// Get returns the cached descriptor, or nil on a cache miss
func (c *CapabilityCache) Get(ctx context.Context) (*schema.Capabilities, error) {
	data, err := c.client.rdb.Get(ctx, capabilitiesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read capabilities: %w", err)
	}

	var caps schema.Capabilities
	if err := json.Unmarshal(data, &caps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal capabilities: %w", err)
	}

	return &caps, nil
}

// Set caches the descriptor
func (c *CapabilityCache) Set(ctx context.Context, caps *schema.Capabilities) error {
	data, err := json.Marshal(caps)
	if err != nil {
		return fmt.Errorf("failed to marshal capabilities: %w", err)
	}

	return c.client.rdb.Set(ctx, capabilitiesKey, data, c.ttl).Err()
}

// Invalidate removes the cached descriptor
func (c *CapabilityCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, capabilitiesKey).Err()
}
