package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ResourceType is a category of provider data; it selects the TTL policy
type ResourceType string

const (
	ResourceLocations   ResourceType = "locations"
	ResourceHotelList   ResourceType = "hotelList"
	ResourceFlights     ResourceType = "flights"
	ResourceFlightPrice ResourceType = "flightPrice"
	ResourceHotels      ResourceType = "hotels"
	ResourceHotelOffer  ResourceType = "hotelOffer"
)

// ResourceTypes lists every known resource type
var ResourceTypes = []ResourceType{
	ResourceLocations,
	ResourceHotelList,
	ResourceFlights,
	ResourceFlightPrice,
	ResourceHotels,
	ResourceHotelOffer,
}

// IsValid reports whether r is a known resource type
func (r ResourceType) IsValid() bool {
	for _, known := range ResourceTypes {
		if r == known {
			return true
		}
	}
	return false
}

// UnmarshalYAML implements custom YAML unmarshaling for ResourceType
func (r *ResourceType) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	candidate := ResourceType(str)
	if !candidate.IsValid() {
		return fmt.Errorf("invalid resource type '%s': must be one of %v", str, ResourceTypes)
	}
	*r = candidate
	return nil
}

// CacheEntry is the stored form of a cached payload
type CacheEntry struct {
	Data         []byte       `json:"data"`
	CreatedAt    int64        `json:"created_at"` // unix nanoseconds
	ExpiresAt    int64        `json:"expires_at"` // unix nanoseconds
	HitCount     int64        `json:"hit_count"`
	ResourceType ResourceType `json:"resource_type"`
}

// NewCacheEntry builds an entry that expires ttl after now
func NewCacheEntry(data []byte, resourceType ResourceType, now time.Time, ttl time.Duration) CacheEntry {
	return CacheEntry{
		Data:         data,
		CreatedAt:    now.UnixNano(),
		ExpiresAt:    now.Add(ttl).UnixNano(),
		ResourceType: resourceType,
	}
}

// IsExpired reports whether the entry must no longer be served at now.
// The lazy lookup check and the periodic sweep both use this predicate.
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return now.UnixNano() >= e.ExpiresAt
}

// TTLRemaining returns the time left before expiry, never negative
func (e *CacheEntry) TTLRemaining(now time.Time) time.Duration {
	remaining := time.Duration(e.ExpiresAt - now.UnixNano())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Age returns how long ago the entry was created
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixNano() - e.CreatedAt)
}

// CacheStats is a snapshot of cache counters
type CacheStats struct {
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Sets      int64  `json:"sets"`
	Evictions int64  `json:"evictions"`
	Size      int    `json:"size"`
	HitRate   string `json:"hitRate"`
}

// CacheEntryInfo describes a single key for debugging
type CacheEntryInfo struct {
	Exists         bool   `json:"exists"`
	Valid          bool   `json:"valid"`
	AgeMs          *int64 `json:"age,omitempty"`
	TTLRemainingMs *int64 `json:"ttlRemaining,omitempty"`
	Hits           *int64 `json:"hits,omitempty"`
}
