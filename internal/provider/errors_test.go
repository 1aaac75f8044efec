package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"travel-gateway/internal/models"
)

func TestNewStatusError(t *testing.T) {
	body := []byte(`{"errors":[{"status":400,"code":477,"title":"INVALID FORMAT","detail":"departureDate must be in the future"}]}`)

	err := newStatusError(400, body)

	assert.Equal(t, 400, err.Status)
	first, ok := err.First()
	assert.True(t, ok)
	assert.Equal(t, 477, first.Code)
	assert.Equal(t, "departureDate must be in the future", first.Message())
	assert.Equal(t, "amadeus responded 400: departureDate must be in the future", err.Error())

	garbled := newStatusError(502, []byte("<html>bad gateway</html>"))
	assert.Empty(t, garbled.Errors)
	assert.Equal(t, "amadeus responded 502", garbled.Error())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   models.ErrorKind
		wantStatus int
		wantMsg    string
		sentinel   error
	}{
		{
			name:     "missing credentials",
			err:      fmt.Errorf("set credentials: %w", models.ErrNotConfigured),
			wantKind: models.KindConfiguration,
			wantMsg:  "amadeus credentials not configured",
			sentinel: models.ErrNotConfigured,
		},
		{
			name:       "unauthorized",
			err:        &StatusError{Status: 401},
			wantKind:   models.KindAuthentication,
			wantStatus: 401,
			wantMsg:    "amadeus authentication failed",
			sentinel:   models.ErrAuthentication,
		},
		{
			name:       "rate limited",
			err:        &StatusError{Status: 429, Errors: []APIError{{Title: "Too many requests"}}},
			wantKind:   models.KindRateLimit,
			wantStatus: 429,
			wantMsg:    "amadeus rate limit exceeded, try again shortly",
			sentinel:   models.ErrRateLimited,
		},
		{
			name:       "bad request with detail",
			err:        &StatusError{Status: 400, Errors: []APIError{{Title: "INVALID DATA", Detail: "origin is invalid"}}},
			wantKind:   models.KindRequest,
			wantStatus: 400,
			wantMsg:    "amadeus request error: origin is invalid",
			sentinel:   models.ErrInvalidRequest,
		},
		{
			name:       "bad request with title only",
			err:        &StatusError{Status: 400, Errors: []APIError{{Title: "INVALID DATA"}}},
			wantKind:   models.KindRequest,
			wantStatus: 400,
			wantMsg:    "amadeus request error: INVALID DATA",
			sentinel:   models.ErrInvalidRequest,
		},
		{
			name:       "bad request without entries is generic",
			err:        &StatusError{Status: 400},
			wantKind:   models.KindProvider,
			wantStatus: 400,
			wantMsg:    "amadeus api error in searchFlights: 400",
			sentinel:   models.ErrProvider,
		},
		{
			name:       "server error uses first detail",
			err:        &StatusError{Status: 500, Errors: []APIError{{Detail: "system error"}}},
			wantKind:   models.KindProvider,
			wantStatus: 500,
			wantMsg:    "system error",
			sentinel:   models.ErrProvider,
		},
		{
			name:       "transport failure counts as 500",
			err:        errors.New("dial tcp: connection refused"),
			wantKind:   models.KindProvider,
			wantStatus: 500,
			wantMsg:    "amadeus api error in searchFlights: 500",
			sentinel:   models.ErrProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err, "searchFlights")

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Error())
			assert.Equal(t, "searchFlights", got.Label)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_PassesGatewayErrorsThrough(t *testing.T) {
	original := &models.GatewayError{Kind: models.KindQueueCleared, Label: "queue"}

	got := Classify(fmt.Errorf("wrapped: %w", original), "searchHotels")

	assert.Same(t, original, got)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 404, StatusOf(fmt.Errorf("get offer: %w", &StatusError{Status: 404})))
	assert.Equal(t, 500, StatusOf(errors.New("boom")))
}
