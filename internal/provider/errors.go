package provider

import (
	"errors"
	"fmt"
	"net/http"

	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

// APIError is one entry of the provider's error body
type APIError struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Message returns the detail, falling back to the title
func (e APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// StatusError is returned by AmadeusClient for any non-2xx response
type StatusError struct {
	Status int
	Errors []APIError
}

func (e *StatusError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("amadeus responded %d: %s", e.Status, e.Errors[0].Message())
	}
	return fmt.Sprintf("amadeus responded %d", e.Status)
}

// First returns the first error entry, if any
func (e *StatusError) First() (APIError, bool) {
	if len(e.Errors) == 0 {
		return APIError{}, false
	}
	return e.Errors[0], true
}

type errorBody struct {
	Errors []APIError `json:"errors"`
}

// newStatusError decodes the provider's {errors:[...]} body. Bodies that do not decode
// still produce a StatusError carrying the status alone.
func newStatusError(status int, body []byte) *StatusError {
	statusErr := &StatusError{Status: status}
	if len(body) == 0 {
		return statusErr
	}

	var parsed errorBody
	if err := utils.Unmarshal(body, &parsed); err == nil {
		statusErr.Errors = parsed.Errors
	}
	return statusErr
}

// StatusOf returns the HTTP status behind err. Failures without one count as 500.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return http.StatusInternalServerError
}

// Classify maps a provider failure to a GatewayError. It has no side effects;
// the wrapper resets the client for authentication failures.
func Classify(err error, label string) *models.GatewayError {
	var gwErr *models.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}

	if errors.Is(err, models.ErrNotConfigured) {
		return &models.GatewayError{Kind: models.KindConfiguration, Label: label, Err: err}
	}

	status := StatusOf(err)
	var first APIError
	var hasEntry bool
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		first, hasEntry = statusErr.First()
	}

	switch {
	case status == http.StatusUnauthorized:
		return &models.GatewayError{Kind: models.KindAuthentication, Label: label, Status: status, Err: err}
	case status == http.StatusTooManyRequests:
		return &models.GatewayError{Kind: models.KindRateLimit, Label: label, Status: status, Err: err}
	case status == http.StatusBadRequest && hasEntry:
		return &models.GatewayError{Kind: models.KindRequest, Label: label, Status: status, Detail: first.Message(), Err: err}
	}

	return &models.GatewayError{Kind: models.KindProvider, Label: label, Status: status, Detail: first.Message(), Err: err}
}
