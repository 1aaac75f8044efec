package httpserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"travel-gateway/internal/models"
	"travel-gateway/internal/travelutil"
)

const (
	maxFlightResults = 50
	maxStayNights    = 30
	maxTravelers     = 9
)

// validateFlightSearch returns a client-facing message for the first rule params break
func (s *Server) validateFlightSearch(params models.FlightSearchParams) string {
	if params.Origin == "" || params.Destination == "" || params.DepartureDate == "" {
		return "Missing required parameters: origin, destination, departureDate"
	}
	if !travelutil.IsValidIATACode(params.Origin) {
		return fmt.Sprintf("Invalid origin IATA code: %s. Must be 3 letters.", params.Origin)
	}
	if !travelutil.IsValidIATACode(params.Destination) {
		return fmt.Sprintf("Invalid destination IATA code: %s. Must be 3 letters.", params.Destination)
	}
	if !travelutil.IsValidDate(params.DepartureDate) {
		return fmt.Sprintf("Invalid departure date format: %s. Use YYYY-MM-DD.", params.DepartureDate)
	}
	if !travelutil.IsFutureDate(params.DepartureDate, s.clock.Now()) {
		return "Departure date must be in the future"
	}
	if params.ReturnDate != "" {
		if !travelutil.IsValidDate(params.ReturnDate) {
			return fmt.Sprintf("Invalid return date format: %s. Use YYYY-MM-DD.", params.ReturnDate)
		}
		// YYYY-MM-DD strings order chronologically
		if params.ReturnDate < params.DepartureDate {
			return "Return date must be after departure date"
		}
	}
	if params.Adults < 1 || params.Adults > maxTravelers {
		return "Adults must be between 1 and 9"
	}
	if params.Infants > params.Adults {
		return "Number of infants cannot exceed number of adults"
	}
	if err := s.validate.Struct(params); err != nil {
		return validationMessage(err)
	}
	return ""
}

// validateHotelSearch returns a client-facing message for the first rule params break
func (s *Server) validateHotelSearch(params models.HotelSearchParams) string {
	hasGeo := params.Latitude != nil && params.Longitude != nil
	if params.CityCode == "" && !hasGeo && len(params.HotelIDs) == 0 {
		return "Missing required parameters: cityCode, or latitude and longitude"
	}
	if params.CheckInDate == "" || params.CheckOutDate == "" {
		return "Missing required date parameters: checkInDate, checkOutDate"
	}
	if !travelutil.IsValidDate(params.CheckInDate) {
		return fmt.Sprintf("Invalid check-in date format: %s. Use YYYY-MM-DD.", params.CheckInDate)
	}
	if !travelutil.IsValidDate(params.CheckOutDate) {
		return fmt.Sprintf("Invalid check-out date format: %s. Use YYYY-MM-DD.", params.CheckOutDate)
	}
	if !travelutil.IsFutureDate(params.CheckInDate, s.clock.Now()) {
		return "Check-in date must be in the future"
	}
	if params.CheckOutDate <= params.CheckInDate {
		return "Check-out date must be after check-in date"
	}
	if travelutil.CalculateNights(params.CheckInDate, params.CheckOutDate) > maxStayNights {
		return "Maximum stay is 30 nights"
	}
	if params.Adults < 1 || params.Adults > maxTravelers {
		return "Adults must be between 1 and 9"
	}
	if params.RoomQuantity < 1 || params.RoomQuantity > maxTravelers {
		return "Room quantity must be between 1 and 9"
	}
	if err := s.validate.Struct(params); err != nil {
		return validationMessage(err)
	}
	return ""
}

// validationMessage flattens validator errors into one line
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "Invalid parameters: " + strings.Join(parts, ", ")
}
