package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-gateway/internal/models"
)

func segment(id, carrier, number, from, to, dep, arr, duration string) models.FlightSegment {
	return models.FlightSegment{
		ID:          id,
		CarrierCode: carrier,
		Number:      number,
		Departure:   models.FlightEndpoint{IataCode: from, At: dep},
		Arrival:     models.FlightEndpoint{IataCode: to, At: arr},
		Aircraft:    models.AircraftRef{Code: "321"},
		Duration:    duration,
	}
}

func offer(id, total, duration, departure string, outboundStops, inboundStops int) models.FlightOffer {
	build := func(stops int) models.Itinerary {
		segs := make([]models.FlightSegment, 0, stops+1)
		for i := 0; i <= stops; i++ {
			segs = append(segs, segment(id, "AF", "100", "JFK", "CDG", departure, departure, "PT1H"))
		}
		return models.Itinerary{Duration: duration, Segments: segs}
	}

	o := models.FlightOffer{
		ID:          id,
		Price:       models.FlightPrice{GrandTotal: total, Currency: "EUR"},
		Itineraries: []models.Itinerary{build(outboundStops)},
	}
	if inboundStops >= 0 {
		o.Itineraries = append(o.Itineraries, build(inboundStops))
	}
	return o
}

func TestTransform(t *testing.T) {
	raw := models.FlightOffer{
		ID:                     "7",
		OneWay:                 false,
		NumberOfBookableSeats:  4,
		ValidatingAirlineCodes: []string{"AF"},
		Price:                  models.FlightPrice{Currency: "EUR", GrandTotal: "512.30"},
		Itineraries: []models.Itinerary{
			{
				Duration: "PT9H45M",
				Segments: []models.FlightSegment{
					segment("1", "AF", "7", "JFK", "CDG", "2025-06-01T18:30:00", "2025-06-02T07:55:00", "PT7H25M"),
					segment("2", "AF", "1234", "CDG", "NCE", "2025-06-02T09:00:00", "2025-06-02T10:35:00", "PT1H35M"),
				},
			},
			{
				Duration: "PT8H50M",
				Segments: []models.FlightSegment{
					segment("3", "AF", "8", "CDG", "JFK", "2025-06-10T10:00:00", "2025-06-10T12:50:00", "PT8H50M"),
				},
			},
		},
		TravelerPricings: []models.TravelerPricing{{
			FareDetailsBySegment: []models.FareDetails{{SegmentID: "1", Cabin: models.TravelClassBusiness}},
		}},
	}
	dicts := &models.FlightDictionaries{Aircraft: map[string]string{"321": "AIRBUS A321"}}

	got := Transform(raw, dicts)

	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "AF", got.Airline)
	assert.Equal(t, "Air France", got.AirlineName, "falls back to the built-in table")
	assert.Equal(t, "AF7", got.FlightNumber)
	assert.Equal(t, "JFK", got.DepartureAirport)
	assert.Equal(t, "NCE", got.ArrivalAirport)
	assert.Equal(t, 1, got.Stops)
	assert.Equal(t, 512.30, got.Price)
	assert.Equal(t, models.TravelClassBusiness, got.Cabin)
	assert.Equal(t, 4, got.SeatsAvailable)

	assert.Equal(t, "9h 45m", got.Outbound.Duration)
	assert.Equal(t, "Jun 1, 18:30", got.Outbound.Departure.Time)
	assert.Equal(t, "Jun 2, 10:35", got.Outbound.Arrival.Time)
	require.Len(t, got.Outbound.Segments, 2)
	assert.Equal(t, "AIRBUS A321", got.Outbound.Segments[0].Aircraft)
	assert.Equal(t, "AF1234", got.Outbound.Segments[1].FlightNumber)

	require.NotNil(t, got.Inbound)
	assert.Equal(t, "JFK", got.Inbound.Arrival.Airport)
}

func TestTransform_Fallbacks(t *testing.T) {
	raw := offer("1", "100.00", "PT2H", "2025-06-01T08:00:00", 0, -1)
	raw.ValidatingAirlineCodes = nil
	raw.Itineraries[0].Segments[0].CarrierCode = "ZZ"

	got := Transform(raw, &models.FlightDictionaries{Carriers: map[string]string{"AF": "AIR FRANCE"}})

	assert.Equal(t, "ZZ", got.Airline)
	assert.Equal(t, "ZZ", got.AirlineName, "unknown carriers keep their code")
	assert.Equal(t, "321", got.Outbound.Segments[0].Aircraft)
	assert.Equal(t, models.TravelClassEconomy, got.Cabin)
	assert.Nil(t, got.Inbound)

	carrierFromDict := Transform(offer("2", "1", "PT1H", "2025-06-01T08:00:00", 0, -1), &models.FlightDictionaries{Carriers: map[string]string{"AF": "AIR FRANCE"}})
	assert.Equal(t, "AIR FRANCE", carrierFromDict.AirlineName)

	empty := Transform(models.FlightOffer{ID: "x"}, nil)
	assert.Equal(t, "x", empty.ID)
	assert.Empty(t, empty.Outbound.Segments)
}

func TestCheapestAndFastest(t *testing.T) {
	offers := []models.FlightOffer{
		offer("a", "300.00", "PT8H", "2025-06-01T10:00:00", 0, -1),
		offer("b", "199.99", "PT11H", "2025-06-01T07:00:00", 1, -1),
		offer("c", "199.99", "PT6H30M", "2025-06-01T12:00:00", 0, -1),
	}

	cheapest, ok := Cheapest(offers)
	require.True(t, ok)
	assert.Equal(t, "b", cheapest.ID, "ties keep the earlier offer")

	fastest, ok := Fastest(offers)
	require.True(t, ok)
	assert.Equal(t, "c", fastest.ID)

	_, ok = Cheapest(nil)
	assert.False(t, ok)
	_, ok = Fastest(nil)
	assert.False(t, ok)
}

func TestFilterByStops(t *testing.T) {
	offers := []models.FlightOffer{
		offer("direct", "1", "PT1H", "2025-06-01T10:00:00", 0, 0),
		offer("outbound-stop", "1", "PT1H", "2025-06-01T10:00:00", 1, 0),
		offer("inbound-stop", "1", "PT1H", "2025-06-01T10:00:00", 0, 2),
		offer("one-way", "1", "PT1H", "2025-06-01T10:00:00", 0, -1),
	}

	ids := func(list []models.FlightOffer) []string {
		out := make([]string, 0, len(list))
		for _, o := range list {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Equal(t, []string{"direct", "one-way"}, ids(FilterByStops(offers, 0)))
	assert.Equal(t, []string{"direct", "outbound-stop", "one-way"}, ids(FilterByStops(offers, 1)))
	assert.Len(t, FilterByStops(offers, 2), 4)
}

func TestSort(t *testing.T) {
	offers := []models.FlightOffer{
		offer("a", "300.00", "PT8H", "2025-06-01T10:00:00", 0, -1),
		offer("b", "150.00", "PT11H", "2025-06-01T07:00:00", 0, -1),
		offer("c", "150.00", "PT6H30M", "2025-06-01T12:00:00", 0, -1),
	}

	tests := []struct {
		by   SortBy
		want []string
	}{
		{by: SortByPrice, want: []string{"b", "c", "a"}},
		{by: SortByDuration, want: []string{"c", "a", "b"}},
		{by: SortByDeparture, want: []string{"b", "a", "c"}},
		{by: SortBy("unknown"), want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.by), func(t *testing.T) {
			sorted := Sort(offers, tt.by)
			got := make([]string, 0, len(sorted))
			for _, o := range sorted {
				got = append(got, o.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "a", offers[0].ID, "input is not modified")
}
