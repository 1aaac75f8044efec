package interfaces

import (
	"time"

	"travel-gateway/internal/models"
)

//go:generate mockgen -package=mock -source=ttl_policy.go -destination=mock/ttl_policy.go

// TTLPolicy maps a resource type to its time-to-live
type TTLPolicy interface {
	TTL(resourceType models.ResourceType) time.Duration
	Table() map[models.ResourceType]time.Duration
}
