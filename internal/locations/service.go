package locations

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"travel-gateway/internal/gateway"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
)

const (
	DefaultSubType = "CITY,AIRPORT"
	DefaultLimit   = 10
	MaxLimit       = 20

	minKeywordLength = 2
)

// Service resolves airports and cities for autocomplete
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

// Search looks up locations matching keyword, most travelled first
func (s *Service) Search(ctx context.Context, query models.LocationQuery) (*models.LocationSearchResult, error) {
	query.Keyword = strings.TrimSpace(query.Keyword)
	if len(query.Keyword) < minKeywordLength {
		return nil, &models.GatewayError{
			Kind:   models.KindRequest,
			Label:  "searchLocations",
			Status: 400,
			Detail: "keyword must be at least 2 characters",
		}
	}
	if query.SubType == "" {
		query.SubType = DefaultSubType
	}
	if query.Limit <= 0 {
		query.Limit = DefaultLimit
	}
	if query.Limit > MaxLimit {
		query.Limit = MaxLimit
	}

	params := map[string]interface{}{
		"keyword": strings.ToLower(query.Keyword),
		"subType": query.SubType,
		"limit":   query.Limit,
	}
	if query.CountryCode != "" {
		params["countryCode"] = strings.ToUpper(query.CountryCode)
	}

	result, err := gateway.Cached(ctx, s.gateway, models.ResourceLocations, params, "searchLocations",
		func(ctx context.Context, api interfaces.ProviderAPI) ([]models.LocationResult, error) {
			locations, err := api.SearchLocations(ctx, query)
			if err != nil {
				return nil, err
			}
			sort.SliceStable(locations, func(i, j int) bool {
				return locations[i].TravelerScore() > locations[j].TravelerScore()
			})
			return locations, nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Location search completed",
		zap.String("keyword", query.Keyword),
		zap.Int("results", len(result.Data)),
		zap.Bool("cached", result.Cached))

	return &models.LocationSearchResult{Data: result.Data, Cached: result.Cached}, nil
}
