package cache_rules

import (
	"time"

	"travel-gateway/internal/models"
)

// TTLRulesConfig is the on-disk form of the TTL override file
type TTLRulesConfig struct {
	TTLs map[models.ResourceType]time.Duration `yaml:"ttls"`
}

// DefaultTTLs is the built-in resource type to TTL table. Price-bearing data
// gets minutes, reference data gets hours.
func DefaultTTLs() map[models.ResourceType]time.Duration {
	return map[models.ResourceType]time.Duration{
		models.ResourceLocations:   24 * time.Hour,
		models.ResourceHotelList:   24 * time.Hour,
		models.ResourceFlights:     10 * time.Minute,
		models.ResourceFlightPrice: 3 * time.Minute,
		models.ResourceHotels:      30 * time.Minute,
		models.ResourceHotelOffer:  10 * time.Minute,
	}
}
