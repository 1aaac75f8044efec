package interfaces

import (
	"time"

	"travel-gateway/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache is a single storage tier. Tiers store entries as-is; expiry decisions
// belong to the caller, except for DeleteExpired.
type Cache interface {
	Get(key string) (*models.CacheEntry, bool) // returns entry and found flag
	Set(key string, entry models.CacheEntry)
	Touch(key string) // increments the hit count of an existing entry
	Delete(key string) bool
	DeletePrefix(prefix string) int
	DeleteExpired(now time.Time) int
	Len() int
	Clear() int
}
