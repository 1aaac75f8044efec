package metrics

import (
	"context"
	"errors"
	"net"

	"github.com/valyala/fasthttp"
)

// Outcome is the metrics label for the result of a provider call
type Outcome string

const (
	// OutcomeSuccess indicates a 2xx response that decoded cleanly
	OutcomeSuccess Outcome = "success"

	// OutcomeNetworkError indicates a timeout, refused or dropped connection
	OutcomeNetworkError Outcome = "network_error"

	// OutcomeHTTPError indicates a non-2xx response
	OutcomeHTTPError Outcome = "http_error"

	// OutcomeUnknownError indicates anything else, usually a decode failure
	OutcomeUnknownError Outcome = "unknown_error"
)

// CategorizeOutcome maps a provider call error and HTTP status to an Outcome
func CategorizeOutcome(err error, httpStatus int) Outcome {
	if err == nil {
		return OutcomeSuccess
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, fasthttp.ErrConnectionClosed) ||
		errors.Is(err, fasthttp.ErrNoFreeConns) {
		return OutcomeNetworkError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return OutcomeNetworkError
	}

	if httpStatus != 0 && (httpStatus < 200 || httpStatus > 299) {
		return OutcomeHTTPError
	}

	return OutcomeUnknownError
}
