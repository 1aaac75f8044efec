package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"travel-gateway/internal/config"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

const (
	SandboxBaseURL    = "https://test.api.amadeus.com"
	ProductionBaseURL = "https://api.amadeus.com"

	tokenPath = "/v1/security/oauth2/token"

	// tokenSkew is subtracted from expires_in so a token is never used at its edge
	tokenSkew = 10 * time.Second

	amadeusContentType = "application/vnd.amadeus+json"
)

var _ interfaces.ProviderAPI = (*AmadeusClient)(nil)

// ClientConfig configures one AmadeusClient
type ClientConfig struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	Timeout         time.Duration
	MaxConnsPerHost int

	// Dial replaces the network dialer, used by tests
	Dial  fasthttp.DialFunc
	Clock clock.Clock
}

// BaseURLFor returns the provider host of an environment
func BaseURLFor(env config.Environment) string {
	if env == config.EnvProduction {
		return ProductionBaseURL
	}
	return SandboxBaseURL
}

// ClientConfigFrom derives a ClientConfig from the provider section of the config
func ClientConfigFrom(cfg config.ProviderConfig) ClientConfig {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURLFor(cfg.Environment)
	}
	return ClientConfig{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		ClientID:        cfg.ClientID,
		ClientSecret:    cfg.ClientSecret,
		Timeout:         cfg.Timeout,
		MaxConnsPerHost: cfg.MaxConnsPerHost,
	}
}

// AmadeusClient is the provider handle: a fasthttp client plus OAuth2 token state
type AmadeusClient struct {
	http    *fasthttp.Client
	baseURL string
	id      string
	secret  string
	timeout time.Duration
	clock   clock.Clock
	logger  *zap.Logger

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewAmadeusClient creates a handle. No network call is made until the first request.
func NewAmadeusClient(cfg ClientConfig, logger *zap.Logger) *AmadeusClient {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &AmadeusClient{
		http: &fasthttp.Client{
			Name:            "travel-gateway",
			ReadTimeout:     cfg.Timeout,
			WriteTimeout:    cfg.Timeout,
			MaxConnsPerHost: cfg.MaxConnsPerHost,
			Dial:            cfg.Dial,
		},
		baseURL: cfg.BaseURL,
		id:      cfg.ClientID,
		secret:  cfg.ClientSecret,
		timeout: cfg.Timeout,
		clock:   clk,
		logger:  logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// SearchLocations looks up airports and cities by keyword
func (c *AmadeusClient) SearchLocations(ctx context.Context, query models.LocationQuery) ([]models.LocationResult, error) {
	args := &fasthttp.Args{}
	args.Set("keyword", query.Keyword)
	if query.SubType != "" {
		args.Set("subType", query.SubType)
	}
	if query.CountryCode != "" {
		args.Set("countryCode", query.CountryCode)
	}
	if query.Limit > 0 {
		args.Set("page[limit]", strconv.Itoa(query.Limit))
	}

	var resp envelope[[]models.LocationResult]
	if err := c.do(ctx, fasthttp.MethodGet, "/v1/reference-data/locations", args, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SearchFlightOffers runs a flight offer search
func (c *AmadeusClient) SearchFlightOffers(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResponse, error) {
	args := &fasthttp.Args{}
	args.Set("originLocationCode", params.Origin)
	args.Set("destinationLocationCode", params.Destination)
	args.Set("departureDate", params.DepartureDate)
	args.Set("adults", strconv.Itoa(params.Adults))
	if params.ReturnDate != "" {
		args.Set("returnDate", params.ReturnDate)
	}
	if params.Children > 0 {
		args.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		args.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.TravelClass != "" {
		args.Set("travelClass", string(params.TravelClass))
	}
	if params.NonStop != nil {
		args.Set("nonStop", strconv.FormatBool(*params.NonStop))
	}
	if params.MaxPrice > 0 {
		args.Set("maxPrice", strconv.Itoa(params.MaxPrice))
	}
	if params.CurrencyCode != "" {
		args.Set("currencyCode", params.CurrencyCode)
	}
	if params.Max > 0 {
		args.Set("max", strconv.Itoa(params.Max))
	}

	var resp models.FlightSearchResponse
	if err := c.do(ctx, fasthttp.MethodGet, "/v2/shopping/flight-offers", args, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type pricingRequest struct {
	Data struct {
		Type         string               `json:"type"`
		FlightOffers []models.FlightOffer `json:"flightOffers"`
	} `json:"data"`
}

type pricingResponse struct {
	FlightOffers []models.FlightOffer `json:"flightOffers"`
}

// PriceFlightOffer re-prices an offer and returns the provider's current version of it
func (c *AmadeusClient) PriceFlightOffer(ctx context.Context, offer models.FlightOffer) (*models.FlightOffer, error) {
	var body pricingRequest
	body.Data.Type = "flight-offers-pricing"
	body.Data.FlightOffers = []models.FlightOffer{offer}

	var resp envelope[pricingResponse]
	if err := c.do(ctx, fasthttp.MethodPost, "/v1/shopping/flight-offers/pricing", nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.FlightOffers) == 0 {
		return nil, errors.New("pricing response contained no flight offers")
	}
	return &resp.Data.FlightOffers[0], nil
}

type remark struct {
	SubType string `json:"subType"`
	Text    string `json:"text"`
}

type orderRemarks struct {
	General []remark `json:"general"`
}

type ticketingAgreement struct {
	Option string `json:"option"`
}

type flightOrderRequest struct {
	Data struct {
		Type               string                `json:"type"`
		FlightOffers       []models.FlightOffer  `json:"flightOffers"`
		Travelers          []models.TravelerInfo `json:"travelers"`
		Remarks            *orderRemarks         `json:"remarks,omitempty"`
		TicketingAgreement *ticketingAgreement   `json:"ticketingAgreement,omitempty"`
		Contacts           []models.ContactInfo  `json:"contacts"`
	} `json:"data"`
}

// CreateFlightOrder books a priced offer
func (c *AmadeusClient) CreateFlightOrder(ctx context.Context, order models.FlightOrderRequest) (*models.FlightOrderResponse, error) {
	var body flightOrderRequest
	body.Data.Type = "flight-order"
	body.Data.FlightOffers = []models.FlightOffer{order.Offer}
	body.Data.Travelers = order.Travelers
	body.Data.Contacts = []models.ContactInfo{order.Contact}
	if order.Remark != "" {
		body.Data.Remarks = &orderRemarks{General: []remark{{SubType: "GENERAL_MISCELLANEOUS", Text: order.Remark}}}
	}
	if order.TicketingOption != "" {
		body.Data.TicketingAgreement = &ticketingAgreement{Option: order.TicketingOption}
	}

	var resp envelope[models.FlightOrderResponse]
	if err := c.do(ctx, fasthttp.MethodPost, "/v1/booking/flight-orders", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// HotelsByCity lists hotels in a city
func (c *AmadeusClient) HotelsByCity(ctx context.Context, cityCode string, opts models.HotelListOptions) ([]models.HotelBasic, error) {
	args := &fasthttp.Args{}
	args.Set("cityCode", cityCode)
	setHotelListArgs(args, opts)

	var resp envelope[[]models.HotelBasic]
	if err := c.do(ctx, fasthttp.MethodGet, "/v1/reference-data/locations/hotels/by-city", args, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// HotelsByGeocode lists hotels around a point
func (c *AmadeusClient) HotelsByGeocode(ctx context.Context, latitude, longitude float64, opts models.HotelListOptions) ([]models.HotelBasic, error) {
	args := &fasthttp.Args{}
	args.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	args.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	setHotelListArgs(args, opts)

	var resp envelope[[]models.HotelBasic]
	if err := c.do(ctx, fasthttp.MethodGet, "/v1/reference-data/locations/hotels/by-geocode", args, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func setHotelListArgs(args *fasthttp.Args, opts models.HotelListOptions) {
	if opts.Radius > 0 {
		args.Set("radius", strconv.Itoa(opts.Radius))
	}
	if opts.RadiusUnit != "" {
		args.Set("radiusUnit", opts.RadiusUnit)
	}
	if len(opts.Ratings) > 0 {
		args.Set("ratings", strings.Join(opts.Ratings, ","))
	}
	if len(opts.Amenities) > 0 {
		args.Set("amenities", strings.Join(opts.Amenities, ","))
	}
}

// SearchHotelOffers returns the offers of a set of hotels
func (c *AmadeusClient) SearchHotelOffers(ctx context.Context, req models.HotelOffersRequest) ([]models.HotelOffer, error) {
	args := &fasthttp.Args{}
	args.Set("hotelIds", strings.Join(req.HotelIDs, ","))
	args.Set("adults", strconv.Itoa(req.Adults))
	args.Set("checkInDate", req.CheckInDate)
	args.Set("checkOutDate", req.CheckOutDate)
	args.Set("roomQuantity", strconv.Itoa(req.RoomQuantity))
	args.Set("currency", req.Currency)
	if req.PriceRange != "" {
		args.Set("priceRange", req.PriceRange)
	}
	if req.BoardType != "" {
		args.Set("boardType", req.BoardType)
	}
	args.Set("bestRateOnly", strconv.FormatBool(req.BestRateOnly))

	var resp envelope[[]models.HotelOffer]
	if err := c.do(ctx, fasthttp.MethodGet, "/v3/shopping/hotel-offers", args, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetHotelOffer returns a single hotel offer by id
func (c *AmadeusClient) GetHotelOffer(ctx context.Context, offerID string) (*models.HotelOffer, error) {
	var resp envelope[*models.HotelOffer]
	if err := c.do(ctx, fasthttp.MethodGet, "/v3/shopping/hotel-offers/"+url.PathEscape(offerID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type bookingGuest struct {
	TID       int    `json:"tid"`
	TitleName string `json:"titleName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

type bookingPayment struct {
	Method      string             `json:"method"`
	PaymentCard models.PaymentCard `json:"paymentCard"`
}

type hotelBookingRequest struct {
	Data struct {
		Type     string           `json:"type"`
		OfferID  string           `json:"offerId"`
		Guests   []bookingGuest   `json:"guests"`
		Payments []bookingPayment `json:"payments"`
	} `json:"data"`
}

// BookHotel books a hotel offer
func (c *AmadeusClient) BookHotel(ctx context.Context, req models.HotelBookingRequest) ([]models.HotelBookingResponse, error) {
	var body hotelBookingRequest
	body.Data.Type = "hotel-booking"
	body.Data.OfferID = req.OfferID
	for _, guest := range req.Guests {
		body.Data.Guests = append(body.Data.Guests, bookingGuest{
			TID:       guest.TID,
			TitleName: guest.Title,
			FirstName: guest.FirstName,
			LastName:  guest.LastName,
			Phone:     guest.Phone,
			Email:     guest.Email,
		})
	}
	body.Data.Payments = []bookingPayment{{Method: req.PaymentMethod, PaymentCard: req.Payment}}

	var resp envelope[[]models.HotelBookingResponse]
	if err := c.do(ctx, fasthttp.MethodPost, "/v1/booking/hotel-bookings", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// do performs one authenticated call and decodes a 2xx body into out
func (c *AmadeusClient) do(ctx context.Context, method, path string, args *fasthttp.Args, body, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	if args != nil {
		req.URI().SetQueryStringBytes(args.QueryString())
	}
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", amadeusContentType+", application/json")

	if body != nil {
		data, err := utils.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		req.SetBody(data)
		req.Header.SetContentType(amadeusContentType)
	}

	if err := c.send(ctx, req, resp); err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return newStatusError(status, resp.Body())
	}

	if out == nil {
		return nil
	}
	if err := utils.UnmarshalAny(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// accessToken returns the cached token or fetches a new one with the client credentials grant
func (c *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	now := c.clock.Now()
	if c.token != "" && now.Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := &fasthttp.Args{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.id)
	form.Set("client_secret", c.secret)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + tokenPath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBody(form.QueryString())

	if err := c.send(ctx, req, resp); err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return "", newStatusError(status, resp.Body())
	}

	var token tokenResponse
	if err := utils.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token response has no access_token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = now.Add(time.Duration(token.ExpiresIn)*time.Second - tokenSkew)
	metrics.RecordTokenRefresh()
	c.logger.Debug("Fetched provider access token", zap.Time("expires_at", c.tokenExpiry))

	return c.token, nil
}

func (c *AmadeusClient) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return c.http.DoDeadline(req, resp, deadline)
	}
	if c.timeout <= 0 {
		return c.http.Do(req, resp)
	}
	return c.http.DoTimeout(req, resp, c.timeout)
}
