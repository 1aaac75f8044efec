package utils

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSuccessResponse(t *testing.T) {
	tests := []struct {
		name        string
		data        interface{}
		expected    string
		description string
	}{
		{
			name:        "object payload",
			data:        map[string]interface{}{"count": 2},
			expected:    `{"success":true,"data":{"count":2}}`,
			description: "should wrap the payload under data",
		},
		{
			name:        "slice payload",
			data:        []string{"PAR", "LON"},
			expected:    `{"success":true,"data":["PAR","LON"]}`,
			description: "should keep slices as arrays",
		},
		{
			name:        "nil payload",
			data:        nil,
			expected:    `{"success":true}`,
			description: "should omit data when there is none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := SuccessResponse(tt.data)
			if err != nil {
				t.Fatalf("SuccessResponse() error = %v", err)
			}
			assertJSONEqual(t, tt.expected, body, tt.description)
		})
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		kind        string
		details     string
		expected    string
		description string
	}{
		{
			name:        "message only",
			message:     "Missing required parameters",
			expected:    `{"success":false,"error":{"message":"Missing required parameters"}}`,
			description: "should omit empty kind and details",
		},
		{
			name:        "full error",
			message:     "Failed to search flights",
			kind:        "rate_limit",
			details:     "amadeus rate limit exceeded, try again shortly",
			expected:    `{"success":false,"error":{"message":"Failed to search flights","kind":"rate_limit","details":"amadeus rate limit exceeded, try again shortly"}}`,
			description: "should carry kind and details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertJSONEqual(t, tt.expected, ErrorResponse(tt.message, tt.kind, tt.details), tt.description)
		})
	}
}

func assertJSONEqual(t *testing.T, expected string, actual []byte, description string) {
	t.Helper()

	var want, got interface{}
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatalf("invalid expected JSON: %v", err)
	}
	if err := json.Unmarshal(actual, &got); err != nil {
		t.Fatalf("invalid JSON produced: %v (%s)", err, actual)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("%s: expected %s, got %s", description, expected, actual)
	}
}
