package flights

import (
	"sort"
	"strconv"
	"time"

	"travel-gateway/internal/models"
	"travel-gateway/internal/travelutil"
)

// SortBy selects the ordering used by Sort
type SortBy string

const (
	SortByPrice     SortBy = "price"
	SortByDuration  SortBy = "duration"
	SortByDeparture SortBy = "departure"
)

// Transform converts a provider offer into its display shape
func Transform(offer models.FlightOffer, dicts *models.FlightDictionaries) models.FlightOfferDisplay {
	display := models.FlightOfferDisplay{
		ID:             offer.ID,
		Price:          grandTotal(offer),
		Currency:       offer.Price.Currency,
		Cabin:          cabinOf(offer),
		SeatsAvailable: offer.NumberOfBookableSeats,
		IsOneWay:       offer.OneWay,
	}

	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return display
	}

	outbound := offer.Itineraries[0]
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	airline := first.CarrierCode
	if len(offer.ValidatingAirlineCodes) > 0 && offer.ValidatingAirlineCodes[0] != "" {
		airline = offer.ValidatingAirlineCodes[0]
	}

	display.Airline = airline
	display.AirlineName = airlineName(airline, dicts)
	display.FlightNumber = first.CarrierCode + first.Number
	display.DepartureTime = first.Departure.At
	display.ArrivalTime = last.Arrival.At
	display.DepartureAirport = first.Departure.IataCode
	display.ArrivalAirport = last.Arrival.IataCode
	display.Duration = outbound.Duration
	display.Stops = len(outbound.Segments) - 1
	display.Outbound = transformLeg(outbound, dicts)

	if len(offer.Itineraries) > 1 && len(offer.Itineraries[1].Segments) > 0 {
		inbound := transformLeg(offer.Itineraries[1], dicts)
		display.Inbound = &inbound
	}

	return display
}

func transformLeg(itinerary models.Itinerary, dicts *models.FlightDictionaries) models.FlightLegDisplay {
	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	segments := make([]models.SegmentDisplay, 0, len(itinerary.Segments))
	for _, seg := range itinerary.Segments {
		segments = append(segments, models.SegmentDisplay{
			Airline:      seg.CarrierCode,
			FlightNumber: seg.CarrierCode + seg.Number,
			Aircraft:     aircraftName(seg.Aircraft.Code, dicts),
			Departure:    endpoint(seg.Departure),
			Arrival:      endpoint(seg.Arrival),
			Duration:     travelutil.FormatDuration(seg.Duration),
		})
	}

	return models.FlightLegDisplay{
		Departure: endpoint(first.Departure),
		Arrival:   endpoint(last.Arrival),
		Duration:  travelutil.FormatDuration(itinerary.Duration),
		Segments:  segments,
	}
}

func endpoint(e models.FlightEndpoint) models.EndpointDisplay {
	return models.EndpointDisplay{
		Time:     travelutil.FormatDateTime(e.At),
		Airport:  e.IataCode,
		Terminal: e.Terminal,
	}
}

// airlineName prefers the response dictionary, then the built-in table, then the code
func airlineName(code string, dicts *models.FlightDictionaries) string {
	if dicts != nil {
		if name, ok := dicts.Carriers[code]; ok && name != "" {
			return name
		}
	}
	return travelutil.AirlineName(code)
}

func aircraftName(code string, dicts *models.FlightDictionaries) string {
	if dicts != nil {
		if name, ok := dicts.Aircraft[code]; ok && name != "" {
			return name
		}
	}
	return code
}

func cabinOf(offer models.FlightOffer) models.TravelClass {
	if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
		if cabin := offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin; cabin != "" {
			return cabin
		}
	}
	return models.TravelClassEconomy
}

func grandTotal(offer models.FlightOffer) float64 {
	price, _ := strconv.ParseFloat(offer.Price.GrandTotal, 64)
	return price
}

func outboundMinutes(offer models.FlightOffer) int {
	if len(offer.Itineraries) == 0 {
		return 0
	}
	return travelutil.ParseDuration(offer.Itineraries[0].Duration)
}

func departureOf(offer models.FlightOffer) time.Time {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return time.Time{}
	}
	t, _ := travelutil.ParseDateTime(offer.Itineraries[0].Segments[0].Departure.At)
	return t
}

func stopsOf(itinerary models.Itinerary) int {
	if len(itinerary.Segments) == 0 {
		return 0
	}
	return len(itinerary.Segments) - 1
}

// Cheapest returns the offer with the lowest grand total; ties keep the earlier offer
func Cheapest(offers []models.FlightOffer) (models.FlightOffer, bool) {
	if len(offers) == 0 {
		return models.FlightOffer{}, false
	}
	best := offers[0]
	for _, offer := range offers[1:] {
		if grandTotal(offer) < grandTotal(best) {
			best = offer
		}
	}
	return best, true
}

// Fastest returns the offer with the shortest outbound duration
func Fastest(offers []models.FlightOffer) (models.FlightOffer, bool) {
	if len(offers) == 0 {
		return models.FlightOffer{}, false
	}
	best := offers[0]
	for _, offer := range offers[1:] {
		if outboundMinutes(offer) < outboundMinutes(best) {
			best = offer
		}
	}
	return best, true
}

// FilterByStops keeps offers whose outbound and inbound legs have at most maxStops stops
func FilterByStops(offers []models.FlightOffer, maxStops int) []models.FlightOffer {
	filtered := make([]models.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		ok := true
		for i, itinerary := range offer.Itineraries {
			if i > 1 {
				break
			}
			if stopsOf(itinerary) > maxStops {
				ok = false
			}
		}
		if ok {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// Sort returns a stably sorted copy of offers
func Sort(offers []models.FlightOffer, by SortBy) []models.FlightOffer {
	sorted := make([]models.FlightOffer, len(offers))
	copy(sorted, offers)

	var less func(a, b models.FlightOffer) bool
	switch by {
	case SortByPrice:
		less = func(a, b models.FlightOffer) bool { return grandTotal(a) < grandTotal(b) }
	case SortByDuration:
		less = func(a, b models.FlightOffer) bool { return outboundMinutes(a) < outboundMinutes(b) }
	case SortByDeparture:
		less = func(a, b models.FlightOffer) bool { return departureOf(a).Before(departureOf(b)) }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
