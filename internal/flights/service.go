package flights

import (
	"context"

	"go.uber.org/zap"

	"travel-gateway/internal/gateway"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
)

const (
	// DefaultMaxResults keeps searches small to conserve provider quota
	DefaultMaxResults = 10

	orderRemark     = "TRAVEL GATEWAY BOOKING"
	ticketingOption = "DELAY_TO_QUEUE"
)

// Service exposes flight search, pricing and booking
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

type searchPayload struct {
	Data         []models.FlightOffer       `json:"data"`
	Dictionaries *models.FlightDictionaries `json:"dictionaries,omitempty"`
}

// Search returns flight offers for params, from the cache when possible
func (s *Service) Search(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResult, error) {
	if params.Max <= 0 {
		params.Max = DefaultMaxResults
	}

	result, err := gateway.Cached(ctx, s.gateway, models.ResourceFlights, params.CacheParams(), "searchFlights",
		func(ctx context.Context, api interfaces.ProviderAPI) (searchPayload, error) {
			resp, err := api.SearchFlightOffers(ctx, params)
			if err != nil {
				return searchPayload{}, err
			}
			return searchPayload{Data: resp.Data, Dictionaries: resp.Dictionaries}, nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Flight search completed",
		zap.String("origin", params.Origin),
		zap.String("destination", params.Destination),
		zap.Int("offers", len(result.Data.Data)),
		zap.Bool("cached", result.Cached))

	return &models.FlightSearchResult{
		Data:         result.Data.Data,
		Dictionaries: result.Data.Dictionaries,
		Cached:       result.Cached,
	}, nil
}

// ConfirmPrice re-prices offer with the provider. It always bypasses the cache.
func (s *Service) ConfirmPrice(ctx context.Context, offer models.FlightOffer) (*models.PriceConfirmation, error) {
	originalPrice := offer.Price.GrandTotal

	priced, err := gateway.Call(ctx, s.gateway, "confirmFlightPrice",
		func(ctx context.Context, api interfaces.ProviderAPI) (*models.FlightOffer, error) {
			return api.PriceFlightOffer(ctx, offer)
		})
	if err != nil {
		return nil, err
	}

	confirmedPrice := priced.Price.GrandTotal
	if confirmedPrice != originalPrice {
		s.logger.Info("Flight price changed on confirmation",
			zap.String("offer_id", offer.ID),
			zap.String("original", originalPrice),
			zap.String("confirmed", confirmedPrice))
	}

	return &models.PriceConfirmation{
		Data:           *priced,
		PriceChanged:   confirmedPrice != originalPrice,
		OriginalPrice:  originalPrice,
		ConfirmedPrice: confirmedPrice,
	}, nil
}

// CreateOrder books a confirmed offer for travelers
func (s *Service) CreateOrder(ctx context.Context, offer models.FlightOffer, travelers []models.TravelerInfo, contact models.ContactInfo) (*models.FlightOrder, error) {
	order := models.FlightOrderRequest{
		Offer:           offer,
		Travelers:       travelers,
		Contact:         contact,
		Remark:          orderRemark,
		TicketingOption: ticketingOption,
	}

	resp, err := gateway.Call(ctx, s.gateway, "createFlightOrder",
		func(ctx context.Context, api interfaces.ProviderAPI) (*models.FlightOrderResponse, error) {
			return api.CreateFlightOrder(ctx, order)
		})
	if err != nil {
		return nil, err
	}

	reference := ""
	if len(resp.AssociatedRecords) > 0 {
		reference = resp.AssociatedRecords[0].Reference
	}

	s.logger.Info("Flight order created", zap.String("order_id", resp.ID), zap.String("reference", reference))

	return &models.FlightOrder{
		OrderID:           resp.ID,
		Reference:         reference,
		AssociatedRecords: resp.AssociatedRecords,
	}, nil
}
