package httpserver

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"travel-gateway/internal/flights"
	"travel-gateway/internal/hotels"
	"travel-gateway/internal/models"
	"travel-gateway/internal/travelutil"
)

// handleLocationSearch serves autocomplete. Provider failures degrade to an empty list.
func (s *Server) handleLocationSearch(w http.ResponseWriter, r *http.Request) {
	if !s.gateway.Wrapper().IsConfigured() {
		s.writeGatewayError(w, "Amadeus API not configured", &models.GatewayError{Kind: models.KindConfiguration, Label: "searchLocations"})
		return
	}

	q := newQueryReader(r)
	query := models.LocationQuery{
		Keyword:     q.string("keyword"),
		SubType:     strings.ToUpper(q.string("subType")),
		CountryCode: strings.ToUpper(q.string("countryCode")),
		Limit:       q.int("limit", 0),
	}
	if err := q.err(); err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(query.Keyword) < 2 {
		s.writeResponse(w, http.StatusOK, LocationSearchResponse{
			Data: []models.LocationResult{},
			Meta: LocationSearchMeta{Message: "Keyword must be at least 2 characters"},
		})
		return
	}

	result, err := s.locations.Search(r.Context(), query)
	if err != nil {
		s.logger.Warn("Location search failed", zap.String("keyword", query.Keyword), zap.Error(err))
		s.writeResponse(w, http.StatusOK, LocationSearchResponse{
			Data: []models.LocationResult{},
			Meta: LocationSearchMeta{Keyword: query.Keyword, Error: err.Error()},
		})
		return
	}

	s.writeResponse(w, http.StatusOK, LocationSearchResponse{
		Data: result.Data,
		Meta: LocationSearchMeta{
			Count:   len(result.Data),
			Cached:  result.Cached,
			Keyword: query.Keyword,
		},
	})
}

func (s *Server) handleFlightSearch(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r)

	currency := q.string("currencyCode")
	if currency == "" {
		currency = q.string("currency")
	}

	params := models.FlightSearchParams{
		Origin:        travelutil.NormalizeIATACode(q.string("origin")),
		Destination:   travelutil.NormalizeIATACode(q.string("destination")),
		DepartureDate: q.string("departureDate"),
		ReturnDate:    q.string("returnDate"),
		Adults:        q.int("adults", 1),
		Children:      q.int("children", 0),
		Infants:       q.int("infants", 0),
		TravelClass:   models.TravelClass(strings.ToUpper(q.string("travelClass"))),
		NonStop:       q.bool("nonStop"),
		MaxPrice:      q.int("maxPrice", 0),
		Max:           q.int("max", flights.DefaultMaxResults),
		CurrencyCode:  strings.ToUpper(currency),
	}
	if params.Max > maxFlightResults {
		params.Max = maxFlightResults
	}
	sortBy := flights.SortBy(q.string("sortBy"))
	maxStops := q.int("maxStops", -1)

	if err := q.err(); err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if msg := s.validateFlightSearch(params); msg != "" {
		s.writeErrorResponse(w, msg, http.StatusBadRequest)
		return
	}

	result, err := s.flights.Search(r.Context(), params)
	if err != nil {
		s.writeGatewayError(w, "Failed to search flights", err)
		return
	}

	offers := result.Data
	if maxStops >= 0 {
		offers = flights.FilterByStops(offers, maxStops)
	}
	if sortBy != "" {
		offers = flights.Sort(offers, sortBy)
	}

	display := make([]models.FlightOfferDisplay, 0, len(offers))
	for _, offer := range offers {
		display = append(display, flights.Transform(offer, result.Dictionaries))
	}

	meta := FlightSearchMeta{
		Count:  len(offers),
		Cached: result.Cached,
		Params: params,
	}
	if cheapest, ok := flights.Cheapest(offers); ok {
		meta.CheapestID = cheapest.ID
	}
	if fastest, ok := flights.Fastest(offers); ok {
		meta.FastestID = fastest.ID
	}

	s.writeResponse(w, http.StatusOK, FlightSearchResponse{
		Data:         offers,
		Display:      display,
		Dictionaries: result.Dictionaries,
		Meta:         meta,
	})
}

func (s *Server) handleFlightPrice(w http.ResponseWriter, r *http.Request) {
	var req FlightPriceRequest
	if err := s.parseRequest(w, r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request: "+validationMessage(err), http.StatusBadRequest)
		return
	}

	confirmation, err := s.flights.ConfirmPrice(r.Context(), *req.FlightOffer)
	if err != nil {
		s.writeGatewayError(w, "Failed to confirm flight price", err)
		return
	}

	s.writeResponse(w, http.StatusOK, confirmation)
}

func (s *Server) handleFlightOrder(w http.ResponseWriter, r *http.Request) {
	var req FlightOrderRequest
	if err := s.parseRequest(w, r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request: "+validationMessage(err), http.StatusBadRequest)
		return
	}

	order, err := s.flights.CreateOrder(r.Context(), *req.FlightOffer, req.Travelers, req.Contact)
	if err != nil {
		s.writeGatewayError(w, "Failed to create flight order", err)
		return
	}

	s.writeResponse(w, http.StatusCreated, order)
}

func (s *Server) handleHotelSearch(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r)

	currency := q.string("currency")
	if currency == "" {
		currency = "USD"
	}

	params := models.HotelSearchParams{
		CityCode:     travelutil.NormalizeIATACode(q.string("cityCode")),
		Latitude:     q.float("latitude"),
		Longitude:    q.float("longitude"),
		Radius:       q.int("radius", 0),
		RadiusUnit:   strings.ToUpper(q.string("radiusUnit")),
		HotelIDs:     q.list("hotelIds"),
		CheckInDate:  q.string("checkInDate"),
		CheckOutDate: q.string("checkOutDate"),
		Adults:       q.int("adults", 2),
		RoomQuantity: q.int("rooms", 1),
		PriceRange:   q.string("priceRange"),
		Currency:     strings.ToUpper(currency),
		Ratings:      q.list("ratings"),
		Amenities:    q.list("amenities"),
		BoardType:    strings.ToUpper(q.string("boardType")),
		BestRateOnly: q.bool("bestRateOnly"),
	}
	sortBy := hotels.SortBy(q.string("sortBy"))
	minRating := q.int("minRating", 0)

	if err := q.err(); err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if msg := s.validateHotelSearch(params); msg != "" {
		s.writeErrorResponse(w, msg, http.StatusBadRequest)
		return
	}

	result, err := s.hotels.SearchOffers(r.Context(), params)
	if err != nil {
		s.writeGatewayError(w, "Failed to search hotels", err)
		return
	}

	offers := result.Data
	if minRating > 0 {
		offers = hotels.FilterByRating(offers, minRating)
	}
	if sortBy != "" {
		offers = hotels.Sort(offers, sortBy)
	}

	display := make([]models.HotelOfferDisplay, 0, len(offers))
	for _, offer := range offers {
		if d := hotels.Transform(offer); d != nil {
			display = append(display, *d)
		}
	}

	ranges := hotels.GroupByPriceRange(offers)
	meta := HotelSearchMeta{
		Count:        len(offers),
		DisplayCount: len(display),
		Cached:       result.Cached,
		Nights:       travelutil.CalculateNights(params.CheckInDate, params.CheckOutDate),
		PriceRanges:  make(map[string]int, len(ranges)),
	}
	for priceRange, group := range ranges {
		meta.PriceRanges[string(priceRange)] = len(group)
	}
	if cheapest, ok := hotels.Cheapest(offers); ok {
		meta.CheapestID = cheapest.Hotel.HotelID
	}

	s.writeResponse(w, http.StatusOK, HotelSearchResponse{
		Data:    offers,
		Display: display,
		Meta:    meta,
	})
}

func (s *Server) handleHotelOffer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := s.hotels.GetOffer(r.Context(), vars["hotelId"], vars["offerId"])
	if err != nil {
		s.writeGatewayError(w, "Failed to get hotel offer", err)
		return
	}

	resp := HotelOfferResponse{Data: result.Data, Cached: result.Cached}
	if result.Data != nil {
		resp.Display = hotels.Transform(*result.Data)
	}
	s.writeResponse(w, http.StatusOK, resp)
}

func (s *Server) handleHotelBooking(w http.ResponseWriter, r *http.Request) {
	var req HotelBookingRequest
	if err := s.parseRequest(w, r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request: "+validationMessage(err), http.StatusBadRequest)
		return
	}

	booking, err := s.hotels.Book(r.Context(), req.OfferID, req.Guests, req.Payment)
	if err != nil {
		s.writeGatewayError(w, "Failed to book hotel", err)
		return
	}

	s.writeResponse(w, http.StatusCreated, booking)
}
