package travelutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// ParseDuration converts an ISO 8601 duration such as "PT12H30M" to minutes.
// Unparseable input yields 0.
func ParseDuration(duration string) int {
	if duration == "" {
		return 0
	}
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	return hours*60 + minutes
}

// FormatDuration renders "PT12H30M" as "12h 30m"
func FormatDuration(duration string) string {
	if duration == "" {
		return ""
	}
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return duration
	}

	parts := make([]string, 0, 2)
	if match[1] != "" {
		parts = append(parts, match[1]+"h")
	}
	if match[2] != "" {
		parts = append(parts, match[2]+"m")
	}
	return strings.Join(parts, " ")
}

// FormatMinutes renders a minute count as "12h 30m", "12h" or "30m"
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// CalculateLayover returns the minutes between an arrival and the next departure.
// Unparseable timestamps yield 0.
func CalculateLayover(arrival, departure string) int {
	arr, err := ParseDateTime(arrival)
	if err != nil {
		return 0
	}
	dep, err := ParseDateTime(departure)
	if err != nil {
		return 0
	}
	return int(dep.Sub(arr).Round(time.Minute) / time.Minute)
}

// FormatLayover renders a layover, empty for non-positive values
func FormatLayover(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return FormatMinutes(minutes) + " layover"
}
