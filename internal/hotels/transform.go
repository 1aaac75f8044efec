package hotels

import (
	"sort"
	"strconv"
	"strings"

	"travel-gateway/internal/models"
	"travel-gateway/internal/travelutil"
)

// SortBy selects the ordering used by Sort
type SortBy string

const (
	SortByPrice  SortBy = "price"
	SortByRating SortBy = "rating"
	SortByName   SortBy = "name"
)

// PriceRange is a per-night price bucket
type PriceRange string

const (
	RangeBudget   PriceRange = "budget"
	RangeModerate PriceRange = "moderate"
	RangePremium  PriceRange = "premium"
	RangeLuxury   PriceRange = "luxury"
)

// missingPrice ranks offers without a price last when looking for the cheapest
const missingPrice = 999999

// Transform converts a hotel offer into its display shape, using the first room offer.
// It returns nil when the hotel has no room offers.
func Transform(offer models.HotelOffer) *models.HotelOfferDisplay {
	if len(offer.Offers) == 0 {
		return nil
	}

	hotel := offer.Hotel
	room := offer.Offers[0]
	total := parseAmount(room.Price.Total)
	nights := travelutil.CalculateNights(room.CheckInDate, room.CheckOutDate)

	display := &models.HotelOfferDisplay{
		ID:                 room.ID,
		HotelID:            hotel.HotelID,
		Name:               hotel.Name,
		Address:            formatAddress(hotel.Address),
		Rating:             ratingOf(offer),
		Latitude:           hotel.Latitude,
		Longitude:          hotel.Longitude,
		PricePerNight:      travelutil.RoundCents(total / float64(nights)),
		TotalPrice:         total,
		Currency:           room.Price.Currency,
		RoomType:           "Standard Room",
		BedType:            "Double",
		BedCount:           1,
		BoardType:          room.BoardType,
		CancellationPolicy: cancellationPolicy(room.Policies),
		Amenities:          hotel.Amenities,
		CheckIn:            room.CheckInDate,
		CheckOut:           room.CheckOutDate,
	}
	if display.Amenities == nil {
		display.Amenities = []string{}
	}

	if room.Room != nil {
		if est := room.Room.TypeEstimated; est != nil && est.Category != "" {
			display.RoomType = est.Category
		} else if room.Room.Type != "" {
			display.RoomType = room.Room.Type
		}
		if est := room.Room.TypeEstimated; est != nil {
			if est.BedType != "" {
				display.BedType = est.BedType
			}
			if est.Beds > 0 {
				display.BedCount = est.Beds
			}
		}
	}

	if len(hotel.Media) > 0 {
		display.Image = hotel.Media[0].URI
	}

	return display
}

func formatAddress(address *models.HotelAddress) string {
	if address == nil {
		return ""
	}
	parts := make([]string, 0, len(address.Lines)+2)
	for _, line := range address.Lines {
		if line != "" {
			parts = append(parts, line)
		}
	}
	if address.CityName != "" {
		parts = append(parts, address.CityName)
	}
	if address.CountryCode != "" {
		parts = append(parts, address.CountryCode)
	}
	return strings.Join(parts, ", ")
}

func cancellationPolicy(policies *models.RoomPolicies) string {
	if policies == nil || policies.Cancellation == nil {
		return ""
	}
	cancellation := policies.Cancellation

	if cancellation.Type == "FULL_STAY" {
		return "Non-refundable"
	}
	if cancellation.Deadline != "" {
		if deadline, err := travelutil.ParseDateTime(cancellation.Deadline); err == nil {
			return "Free cancellation until " + deadline.Format("Jan 2, 2006")
		}
	}
	if cancellation.Description != nil {
		return cancellation.Description.Text
	}
	return ""
}

func parseAmount(value string) float64 {
	amount, _ := strconv.ParseFloat(value, 64)
	return amount
}

func ratingOf(offer models.HotelOffer) int {
	rating, _ := strconv.Atoi(offer.Hotel.Rating)
	return rating
}

func totalOf(offer models.HotelOffer, fallback float64) float64 {
	if len(offer.Offers) == 0 || offer.Offers[0].Price.Total == "" {
		return fallback
	}
	return parseAmount(offer.Offers[0].Price.Total)
}

func perNight(offer models.HotelOffer) float64 {
	if len(offer.Offers) == 0 {
		return 0
	}
	room := offer.Offers[0]
	return parseAmount(room.Price.Total) / float64(travelutil.CalculateNights(room.CheckInDate, room.CheckOutDate))
}

// Cheapest returns the hotel whose first offer has the lowest total.
// Hotels without a price are only chosen when nothing else is priced.
func Cheapest(offers []models.HotelOffer) (models.HotelOffer, bool) {
	if len(offers) == 0 {
		return models.HotelOffer{}, false
	}
	best := offers[0]
	for _, offer := range offers[1:] {
		if totalOf(offer, missingPrice) < totalOf(best, missingPrice) {
			best = offer
		}
	}
	return best, true
}

// FilterByRating keeps hotels rated at least minRating; unrated hotels count as 0
func FilterByRating(offers []models.HotelOffer, minRating int) []models.HotelOffer {
	filtered := make([]models.HotelOffer, 0, len(offers))
	for _, offer := range offers {
		if ratingOf(offer) >= minRating {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// Sort returns a stably sorted copy: price ascending, rating descending or name
func Sort(offers []models.HotelOffer, by SortBy) []models.HotelOffer {
	sorted := make([]models.HotelOffer, len(offers))
	copy(sorted, offers)

	var less func(a, b models.HotelOffer) bool
	switch by {
	case SortByPrice:
		less = func(a, b models.HotelOffer) bool { return totalOf(a, 0) < totalOf(b, 0) }
	case SortByRating:
		less = func(a, b models.HotelOffer) bool { return ratingOf(a) > ratingOf(b) }
	case SortByName:
		less = func(a, b models.HotelOffer) bool {
			return strings.ToLower(a.Hotel.Name) < strings.ToLower(b.Hotel.Name)
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// GroupByPriceRange buckets hotels by price per night
func GroupByPriceRange(offers []models.HotelOffer) map[PriceRange][]models.HotelOffer {
	groups := map[PriceRange][]models.HotelOffer{
		RangeBudget:   {},
		RangeModerate: {},
		RangePremium:  {},
		RangeLuxury:   {},
	}

	for _, offer := range offers {
		price := perNight(offer)
		switch {
		case price < 100:
			groups[RangeBudget] = append(groups[RangeBudget], offer)
		case price < 200:
			groups[RangeModerate] = append(groups[RangeModerate], offer)
		case price < 400:
			groups[RangePremium] = append(groups[RangePremium], offer)
		default:
			groups[RangeLuxury] = append(groups[RangeLuxury], offer)
		}
	}
	return groups
}
