package interfaces

import (
	"context"

	"travel-gateway/internal/models"
)

//go:generate mockgen -package=mock -source=provider.go -destination=mock/provider.go

// ProviderAPI is the set of provider operations the domain services rely on.
// Implementations return *provider.StatusError for non-2xx responses.
type ProviderAPI interface {
	SearchLocations(ctx context.Context, query models.LocationQuery) ([]models.LocationResult, error)
	SearchFlightOffers(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResponse, error)
	PriceFlightOffer(ctx context.Context, offer models.FlightOffer) (*models.FlightOffer, error)
	CreateFlightOrder(ctx context.Context, order models.FlightOrderRequest) (*models.FlightOrderResponse, error)
	HotelsByCity(ctx context.Context, cityCode string, opts models.HotelListOptions) ([]models.HotelBasic, error)
	HotelsByGeocode(ctx context.Context, latitude, longitude float64, opts models.HotelListOptions) ([]models.HotelBasic, error)
	SearchHotelOffers(ctx context.Context, req models.HotelOffersRequest) ([]models.HotelOffer, error)
	GetHotelOffer(ctx context.Context, offerID string) (*models.HotelOffer, error)
	BookHotel(ctx context.Context, req models.HotelBookingRequest) ([]models.HotelBookingResponse, error)
}
