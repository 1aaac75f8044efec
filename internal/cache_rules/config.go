package cache_rules

import (
	"time"

	"go.uber.org/zap"

	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
)

// TTLTable implements the TTLPolicy interface. It is frozen at construction.
type TTLTable struct {
	ttls   map[models.ResourceType]time.Duration
	logger *zap.Logger
}

// Ensure TTLTable implements the TTLPolicy interface
var _ interfaces.TTLPolicy = (*TTLTable)(nil)

// NewTTLTable builds the policy from the defaults with overrides applied on top
func NewTTLTable(overrides map[models.ResourceType]time.Duration, logger *zap.Logger) *TTLTable {
	ttls := DefaultTTLs()
	for resourceType, ttl := range overrides {
		if ttl > 0 {
			ttls[resourceType] = ttl
		}
	}
	return &TTLTable{
		ttls:   ttls,
		logger: logger,
	}
}

// TTL implements TTLPolicy. Unknown types get 0, which callers treat as uncacheable.
func (t *TTLTable) TTL(resourceType models.ResourceType) time.Duration {
	ttl, ok := t.ttls[resourceType]
	if !ok {
		t.logger.Warn("No TTL configured for resource type", zap.String("resource_type", string(resourceType)))
		return 0
	}
	return ttl
}

// Table returns a copy of the whole policy
func (t *TTLTable) Table() map[models.ResourceType]time.Duration {
	out := make(map[models.ResourceType]time.Duration, len(t.ttls))
	for k, v := range t.ttls {
		out[k] = v
	}
	return out
}
