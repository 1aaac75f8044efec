package travelutil

import (
	"math"
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Provider timestamps come without a zone ("2025-06-01T10:15:00"); accept both forms.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	dateLayout,
}

// ParseDateTime parses a provider timestamp
func ParseDateTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDateTime renders a provider timestamp as "Jun 1, 14:30".
// Input that does not parse is returned unchanged.
func FormatDateTime(value string) string {
	if value == "" {
		return ""
	}
	t, err := ParseDateTime(value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2, 15:04")
}

// CalculateNights returns the number of nights between two dates, at least 1
func CalculateNights(checkIn, checkOut string) int {
	start, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return 1
	}
	end, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return 1
	}

	nights := int(math.Ceil(end.Sub(start).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

// IsValidDate reports whether value is a real YYYY-MM-DD date
func IsValidDate(value string) bool {
	if !datePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// IsFutureDate reports whether value is today or later relative to now
func IsFutureDate(value string, now time.Time) bool {
	if !IsValidDate(value) {
		return false
	}
	date, _ := time.Parse(dateLayout, value)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !date.Before(today)
}

// AddDays shifts a YYYY-MM-DD date; invalid input is returned unchanged
func AddDays(value string, days int) string {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return value
	}
	return date.AddDate(0, 0, days).Format(dateLayout)
}

// FormatDate renders a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
