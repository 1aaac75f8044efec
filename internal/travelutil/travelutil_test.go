package travelutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"hours and minutes", "PT12H30M", 750},
		{"hours only", "PT2H", 120},
		{"minutes only", "PT45M", 45},
		{"empty", "", 0},
		{"garbage", "twelve hours", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDuration(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"hours and minutes", "PT12H30M", "12h 30m"},
		{"hours only", "PT7H", "7h"},
		{"minutes only", "PT50M", "50m"},
		{"empty", "", ""},
		{"not iso", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}

func TestFormatMinutesAndLayover(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "2h 5m", FormatMinutes(125))

	assert.Equal(t, "", FormatLayover(0))
	assert.Equal(t, "1h 30m layover", FormatLayover(90))
	assert.Equal(t, 95, CalculateLayover("2025-06-01T10:00:00", "2025-06-01T11:35:00"))
	assert.Equal(t, 0, CalculateLayover("bad", "2025-06-01T11:35:00"))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "Jun 1, 14:30", FormatDateTime("2025-06-01T14:30:00"))
	assert.Equal(t, "Dec 24, 08:05", FormatDateTime("2025-12-24T08:05:00Z"))
	assert.Equal(t, "", FormatDateTime(""))
	assert.Equal(t, "soon", FormatDateTime("soon"))
}

func TestCalculateNights(t *testing.T) {
	assert.Equal(t, 3, CalculateNights("2025-06-01", "2025-06-04"))
	assert.Equal(t, 1, CalculateNights("2025-06-01", "2025-06-01"))
	assert.Equal(t, 1, CalculateNights("2025-06-04", "2025-06-01"))
	assert.Equal(t, 1, CalculateNights("garbage", "2025-06-01"))
}

func TestDateValidation(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, IsValidDate("2025-06-01"))
	assert.False(t, IsValidDate("2025-6-1"))
	assert.False(t, IsValidDate("2025-02-30"))
	assert.False(t, IsValidDate(""))

	assert.True(t, IsFutureDate("2025-05-10", now), "today counts as future")
	assert.True(t, IsFutureDate("2026-01-01", now))
	assert.False(t, IsFutureDate("2025-05-09", now))
	assert.False(t, IsFutureDate("not-a-date", now))

	assert.Equal(t, "2025-03-01", AddDays("2025-02-27", 2))
	assert.Equal(t, "junk", AddDays("junk", 2))
}

func TestIATACode(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		expected string
		found    bool
	}{
		{"exact", "Paris", "CDG", true},
		{"case insensitive", "  new york ", "JFK", true},
		{"partial", "Greater London Area", "LHR", true},
		{"unknown", "Atlantis", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, found := IATACode(tt.city)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestLookups(t *testing.T) {
	assert.Equal(t, "Air France", AirlineName("AF"))
	assert.Equal(t, "ZZ", AirlineName("ZZ"))

	assert.Equal(t, "First Class", CabinClassName("FIRST"))
	assert.Equal(t, "MYSTERY", CabinClassName("MYSTERY"))

	assert.Equal(t, "Direct", FormatStops(0))
	assert.Equal(t, "1 stop", FormatStops(1))
	assert.Equal(t, "3 stops", FormatStops(3))

	assert.Equal(t, 33.33, PricePerPerson(100, 3))
	assert.Equal(t, 0.0, PricePerPerson(100, 0))

	assert.True(t, IsValidIATACode("jfk"))
	assert.False(t, IsValidIATACode("JFKX"))
	assert.False(t, IsValidIATACode("J1K"))
	assert.Equal(t, "CDG", NormalizeIATACode(" cdg "))
}
