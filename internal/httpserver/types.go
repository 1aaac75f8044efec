package httpserver

import (
	"travel-gateway/internal/models"
	"travel-gateway/internal/ratelimit"
)

// FlightPriceRequest is the body of a price confirmation
type FlightPriceRequest struct {
	FlightOffer *models.FlightOffer `json:"flightOffer" validate:"required"`
}

// FlightOrderRequest is the body of a flight booking
type FlightOrderRequest struct {
	FlightOffer *models.FlightOffer   `json:"flightOffer" validate:"required"`
	Travelers   []models.TravelerInfo `json:"travelers" validate:"required,min=1,dive"`
	Contact     models.ContactInfo    `json:"contact"`
}

// HotelBookingRequest is the body of a hotel booking
type HotelBookingRequest struct {
	OfferID string              `json:"offerId" validate:"required"`
	Guests  []models.HotelGuest `json:"guests" validate:"required,min=1,dive"`
	Payment models.PaymentCard  `json:"payment"`
}

// FlightSearchResponse carries the raw offers next to their display form
type FlightSearchResponse struct {
	Data         []models.FlightOffer        `json:"data"`
	Display      []models.FlightOfferDisplay `json:"display"`
	Dictionaries *models.FlightDictionaries  `json:"dictionaries,omitempty"`
	Meta         FlightSearchMeta            `json:"meta"`
}

type FlightSearchMeta struct {
	Count      int                       `json:"count"`
	Cached     bool                      `json:"cached"`
	CheapestID string                    `json:"cheapestId,omitempty"`
	FastestID  string                    `json:"fastestId,omitempty"`
	Params     models.FlightSearchParams `json:"params"`
}

// HotelSearchResponse carries the raw hotel offers next to their display form
type HotelSearchResponse struct {
	Data    []models.HotelOffer        `json:"data"`
	Display []models.HotelOfferDisplay `json:"display"`
	Meta    HotelSearchMeta            `json:"meta"`
}

type HotelSearchMeta struct {
	Count        int            `json:"count"`
	DisplayCount int            `json:"displayCount"`
	Cached       bool           `json:"cached"`
	Nights       int            `json:"nights"`
	CheapestID   string         `json:"cheapestId,omitempty"`
	PriceRanges  map[string]int `json:"priceRanges"`
}

// HotelOfferResponse is a single hotel offer with its display form
type HotelOfferResponse struct {
	Data    *models.HotelOffer        `json:"data"`
	Display *models.HotelOfferDisplay `json:"display,omitempty"`
	Cached  bool                      `json:"cached"`
}

// LocationSearchResponse answers autocomplete lookups
type LocationSearchResponse struct {
	Data []models.LocationResult `json:"data"`
	Meta LocationSearchMeta      `json:"meta"`
}

type LocationSearchMeta struct {
	Count   int    `json:"count"`
	Cached  bool   `json:"cached"`
	Keyword string `json:"keyword,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CacheStatsResponse reports the cache and the queue together
type CacheStatsResponse struct {
	Cache models.CacheStats `json:"cache"`
	Queue ratelimit.Stats   `json:"queue"`
}

// CacheInvalidateResponse reports how many keys a DELETE removed
type CacheInvalidateResponse struct {
	Removed int    `json:"removed"`
	Prefix  string `json:"prefix,omitempty"`
}

// CacheEntryResponse describes one cache key
type CacheEntryResponse struct {
	Key string `json:"key"`
	models.CacheEntryInfo
}

// HealthResponse is the body of /health
type HealthResponse struct {
	Status      string                   `json:"status"`
	Environment string                   `json:"environment"`
	Configured  bool                     `json:"configured"`
	Queue       ratelimit.Stats          `json:"queue"`
	Cache       models.CacheStats        `json:"cache"`
	Connection  *models.ConnectionStatus `json:"connection,omitempty"`
}
