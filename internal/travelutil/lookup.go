package travelutil

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// MajorAirports maps well-known city names to their primary IATA airport
var MajorAirports = map[string]string{
	// United States
	"New York":      "JFK",
	"Los Angeles":   "LAX",
	"Chicago":       "ORD",
	"San Francisco": "SFO",
	"Miami":         "MIA",
	"Boston":        "BOS",
	"Seattle":       "SEA",
	"Las Vegas":     "LAS",
	"Denver":        "DEN",
	"Atlanta":       "ATL",

	// Europe
	"London":    "LHR",
	"Paris":     "CDG",
	"Amsterdam": "AMS",
	"Frankfurt": "FRA",
	"Rome":      "FCO",
	"Madrid":    "MAD",
	"Barcelona": "BCN",
	"Berlin":    "BER",
	"Munich":    "MUC",
	"Milan":     "MXP",
	"Zurich":    "ZRH",
	"Vienna":    "VIE",
	"Dublin":    "DUB",
	"Lisbon":    "LIS",

	// Asia
	"Tokyo":     "NRT",
	"Seoul":     "ICN",
	"Singapore": "SIN",
	"Hong Kong": "HKG",
	"Bangkok":   "BKK",
	"Dubai":     "DXB",
	"Shanghai":  "PVG",
	"Beijing":   "PEK",
	"Taipei":    "TPE",
	"Mumbai":    "BOM",
	"Delhi":     "DEL",

	// Oceania
	"Sydney":    "SYD",
	"Melbourne": "MEL",
	"Auckland":  "AKL",

	// Americas
	"Toronto":      "YYZ",
	"Vancouver":    "YVR",
	"Mexico City":  "MEX",
	"Sao Paulo":    "GRU",
	"Buenos Aires": "EZE",
	"Lima":         "LIM",
	"Bogota":       "BOG",
	"Santiago":     "SCL",
}

// AirlineNames maps carrier codes to airline names
var AirlineNames = map[string]string{
	"AA": "American Airlines",
	"UA": "United Airlines",
	"DL": "Delta Air Lines",
	"WN": "Southwest Airlines",
	"B6": "JetBlue Airways",
	"AS": "Alaska Airlines",
	"NK": "Spirit Airlines",
	"F9": "Frontier Airlines",
	"BA": "British Airways",
	"AF": "Air France",
	"LH": "Lufthansa",
	"KL": "KLM Royal Dutch",
	"IB": "Iberia",
	"AZ": "ITA Airways",
	"LX": "Swiss",
	"OS": "Austrian Airlines",
	"SN": "Brussels Airlines",
	"EI": "Aer Lingus",
	"TP": "TAP Air Portugal",
	"SK": "SAS Scandinavian",
	"AY": "Finnair",
	"LO": "LOT Polish",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"EY": "Etihad Airways",
	"TK": "Turkish Airlines",
	"SQ": "Singapore Airlines",
	"CX": "Cathay Pacific",
	"JL": "Japan Airlines",
	"NH": "All Nippon Airways",
	"KE": "Korean Air",
	"OZ": "Asiana Airlines",
	"CI": "China Airlines",
	"BR": "EVA Air",
	"TG": "Thai Airways",
	"MH": "Malaysia Airlines",
	"GA": "Garuda Indonesia",
	"VN": "Vietnam Airlines",
	"QF": "Qantas",
	"NZ": "Air New Zealand",
	"AC": "Air Canada",
	"AM": "Aeromexico",
	"LA": "LATAM Airlines",
	"AV": "Avianca",
}

var cabinNames = map[string]string{
	"ECONOMY":         "Economy",
	"PREMIUM_ECONOMY": "Premium Economy",
	"BUSINESS":        "Business",
	"FIRST":           "First Class",
}

var iataPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// sortedCities fixes the iteration order of the partial-match pass
var sortedCities = func() []string {
	cities := make([]string, 0, len(MajorAirports))
	for city := range MajorAirports {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}()

// IATACode resolves a city name to an airport code: exact match, then
// case-insensitive, then partial. The second return is false when nothing matches.
func IATACode(cityName string) (string, bool) {
	normalized := strings.TrimSpace(cityName)
	if normalized == "" {
		return "", false
	}
	if code, ok := MajorAirports[normalized]; ok {
		return code, true
	}

	lower := strings.ToLower(normalized)
	for _, city := range sortedCities {
		if strings.ToLower(city) == lower {
			return MajorAirports[city], true
		}
	}
	for _, city := range sortedCities {
		cityLower := strings.ToLower(city)
		if strings.Contains(cityLower, lower) || strings.Contains(lower, cityLower) {
			return MajorAirports[city], true
		}
	}
	return "", false
}

// AirlineName returns the airline name for a carrier code, or the code itself
func AirlineName(carrierCode string) string {
	if name, ok := AirlineNames[carrierCode]; ok {
		return name
	}
	return carrierCode
}

// CabinClassName returns the display name of a cabin code
func CabinClassName(cabin string) string {
	if name, ok := cabinNames[cabin]; ok {
		return name
	}
	return cabin
}

// FormatStops renders a stop count as "Direct", "1 stop" or "N stops"
func FormatStops(stops int) string {
	switch stops {
	case 0:
		return "Direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// PricePerPerson splits a total across travelers, rounded to cents
func PricePerPerson(total float64, travelers int) float64 {
	if travelers <= 0 {
		return 0
	}
	return RoundCents(total / float64(travelers))
}

// RoundCents rounds to two decimals
func RoundCents(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsValidIATACode reports whether code has the shape of an IATA code
func IsValidIATACode(code string) bool {
	return iataPattern.MatchString(code)
}

// NormalizeIATACode upper-cases and trims a code
func NormalizeIATACode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
