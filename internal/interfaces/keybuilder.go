package interfaces

import "travel-gateway/internal/models"

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder canonicalizes request parameters into deterministic cache keys
type KeyBuilder interface {
	Build(resourceType models.ResourceType, params map[string]interface{}) string
	Prefix(resourceType models.ResourceType) string
}
