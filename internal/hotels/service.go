package hotels

import (
	"context"

	"go.uber.org/zap"

	"travel-gateway/internal/gateway"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
)

const (
	defaultCityRadius = 30
	defaultGeoRadius  = 10
	defaultRadiusUnit = "KM"
	defaultCurrency   = "USD"
	defaultRooms      = 1
	defaultTitle      = "MR"
	paymentMethod     = "CREDIT_CARD"

	// maxResolvedHotels bounds how many hotels an offer search asks prices for
	maxResolvedHotels = 8
)

// Service exposes hotel lists, offers and booking
type Service struct {
	gateway *gateway.Gateway
	logger  *zap.Logger
}

func NewService(gw *gateway.Gateway, logger *zap.Logger) *Service {
	return &Service{
		gateway: gw,
		logger:  logger,
	}
}

func listCacheParams(opts models.HotelListOptions) map[string]interface{} {
	params := map[string]interface{}{
		"radius":     opts.Radius,
		"radiusUnit": opts.RadiusUnit,
	}
	if len(opts.Ratings) > 0 {
		params["ratings"] = opts.Ratings
	}
	if len(opts.Amenities) > 0 {
		params["amenities"] = opts.Amenities
	}
	return params
}

// SearchByCity lists hotels in a city
func (s *Service) SearchByCity(ctx context.Context, cityCode string, opts models.HotelListOptions) (*models.HotelListResult, error) {
	if opts.Radius <= 0 {
		opts.Radius = defaultCityRadius
	}
	if opts.RadiusUnit == "" {
		opts.RadiusUnit = defaultRadiusUnit
	}

	params := listCacheParams(opts)
	params["cityCode"] = cityCode

	result, err := gateway.Cached(ctx, s.gateway, models.ResourceHotelList, params, "searchHotelsByCity",
		func(ctx context.Context, api interfaces.ProviderAPI) ([]models.HotelBasic, error) {
			return api.HotelsByCity(ctx, cityCode, opts)
		})
	if err != nil {
		return nil, err
	}
	return &models.HotelListResult{Data: result.Data, Cached: result.Cached}, nil
}

// SearchByGeo lists hotels around a point
func (s *Service) SearchByGeo(ctx context.Context, latitude, longitude float64, opts models.HotelListOptions) (*models.HotelListResult, error) {
	if opts.Radius <= 0 {
		opts.Radius = defaultGeoRadius
	}
	if opts.RadiusUnit == "" {
		opts.RadiusUnit = defaultRadiusUnit
	}

	params := listCacheParams(opts)
	params["latitude"] = latitude
	params["longitude"] = longitude

	result, err := gateway.Cached(ctx, s.gateway, models.ResourceHotelList, params, "searchHotelsByGeo",
		func(ctx context.Context, api interfaces.ProviderAPI) ([]models.HotelBasic, error) {
			return api.HotelsByGeocode(ctx, latitude, longitude, opts)
		})
	if err != nil {
		return nil, err
	}
	return &models.HotelListResult{Data: result.Data, Cached: result.Cached}, nil
}

// SearchOffers returns priced offers of available hotels. Without explicit hotel ids
// they are resolved from the city, else the coordinates.
func (s *Service) SearchOffers(ctx context.Context, params models.HotelSearchParams) (*models.HotelOffersResult, error) {
	hotelIDs, err := s.resolveHotelIDs(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(hotelIDs) == 0 {
		return &models.HotelOffersResult{Data: []models.HotelOffer{}}, nil
	}

	req := models.HotelOffersRequest{
		HotelIDs:     hotelIDs,
		CheckInDate:  params.CheckInDate,
		CheckOutDate: params.CheckOutDate,
		Adults:       params.Adults,
		RoomQuantity: params.RoomQuantity,
		Currency:     params.Currency,
		PriceRange:   params.PriceRange,
		BoardType:    params.BoardType,
		BestRateOnly: params.BestRateOnly == nil || *params.BestRateOnly,
	}
	if req.RoomQuantity <= 0 {
		req.RoomQuantity = defaultRooms
	}
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}

	// Every filter sent to the provider is part of the key; the id list is sorted by the key builder
	cacheParams := map[string]interface{}{
		"hotelIds":     hotelIDs,
		"checkInDate":  req.CheckInDate,
		"checkOutDate": req.CheckOutDate,
		"adults":       req.Adults,
		"roomQuantity": req.RoomQuantity,
		"currency":     req.Currency,
		"bestRateOnly": req.BestRateOnly,
	}
	if req.PriceRange != "" {
		cacheParams["priceRange"] = req.PriceRange
	}
	if req.BoardType != "" {
		cacheParams["boardType"] = req.BoardType
	}

	result, err := gateway.Cached(ctx, s.gateway, models.ResourceHotels, cacheParams, "searchHotelOffers",
		func(ctx context.Context, api interfaces.ProviderAPI) ([]models.HotelOffer, error) {
			offers, err := api.SearchHotelOffers(ctx, req)
			if err != nil {
				return nil, err
			}
			return availableOnly(offers), nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Hotel offer search completed",
		zap.Int("hotels", len(hotelIDs)),
		zap.Int("available", len(result.Data)),
		zap.Bool("cached", result.Cached))

	return &models.HotelOffersResult{Data: result.Data, Cached: result.Cached}, nil
}

func (s *Service) resolveHotelIDs(ctx context.Context, params models.HotelSearchParams) ([]string, error) {
	if len(params.HotelIDs) > 0 {
		return params.HotelIDs, nil
	}

	var list *models.HotelListResult
	var err error
	switch {
	case params.CityCode != "":
		list, err = s.SearchByCity(ctx, params.CityCode, models.HotelListOptions{
			Ratings:   params.Ratings,
			Amenities: params.Amenities,
		})
	case params.Latitude != nil && params.Longitude != nil:
		list, err = s.SearchByGeo(ctx, *params.Latitude, *params.Longitude, models.HotelListOptions{
			Radius:     params.Radius,
			RadiusUnit: params.RadiusUnit,
			Ratings:    params.Ratings,
		})
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, maxResolvedHotels)
	for _, hotel := range list.Data {
		if len(ids) == maxResolvedHotels {
			break
		}
		ids = append(ids, hotel.HotelID)
	}
	return ids, nil
}

func availableOnly(offers []models.HotelOffer) []models.HotelOffer {
	available := make([]models.HotelOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Available {
			available = append(available, offer)
		}
	}
	return available
}

// GetOffer returns a single offer of a hotel
func (s *Service) GetOffer(ctx context.Context, hotelID, offerID string) (*models.HotelOfferResult, error) {
	params := map[string]interface{}{
		"hotelId": hotelID,
		"offerId": offerID,
	}

	result, err := gateway.Cached(ctx, s.gateway, models.ResourceHotelOffer, params, "getHotelOffer",
		func(ctx context.Context, api interfaces.ProviderAPI) (*models.HotelOffer, error) {
			return api.GetHotelOffer(ctx, offerID)
		})
	if err != nil {
		return nil, err
	}
	return &models.HotelOfferResult{Data: result.Data, Cached: result.Cached}, nil
}

// Book books an offer for guests, guaranteed by a payment card
func (s *Service) Book(ctx context.Context, offerID string, guests []models.HotelGuest, payment models.PaymentCard) (*models.HotelBooking, error) {
	numbered := make([]models.HotelGuest, len(guests))
	for i, guest := range guests {
		if guest.TID == 0 {
			guest.TID = i + 1
		}
		if guest.Title == "" {
			guest.Title = defaultTitle
		}
		numbered[i] = guest
	}

	req := models.HotelBookingRequest{
		OfferID:       offerID,
		Guests:        numbered,
		PaymentMethod: paymentMethod,
		Payment:       payment,
	}

	bookings, err := gateway.Call(ctx, s.gateway, "bookHotel",
		func(ctx context.Context, api interfaces.ProviderAPI) ([]models.HotelBookingResponse, error) {
			return api.BookHotel(ctx, req)
		})
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, &models.GatewayError{Kind: models.KindProvider, Label: "bookHotel", Detail: "booking response contained no records"}
	}

	s.logger.Info("Hotel booked", zap.String("booking_id", bookings[0].ID))

	return &models.HotelBooking{
		BookingID:              bookings[0].ID,
		ProviderConfirmationID: bookings[0].ProviderConfirmationID,
	}, nil
}
