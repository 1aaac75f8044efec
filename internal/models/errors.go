package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a gateway failure
type ErrorKind string

const (
	KindConfiguration  ErrorKind = "configuration"
	KindAuthentication ErrorKind = "authentication"
	KindRateLimit      ErrorKind = "rate_limit"
	KindRequest        ErrorKind = "request"
	KindProvider       ErrorKind = "provider"
	KindQueueCleared   ErrorKind = "queue_cleared"
)

var (
	ErrNotConfigured  = errors.New("amadeus credentials not configured")
	ErrAuthentication = errors.New("amadeus authentication failed")
	ErrRateLimited    = errors.New("amadeus rate limit exceeded, try again shortly")
	ErrInvalidRequest = errors.New("amadeus request error")
	ErrProvider       = errors.New("amadeus api error")
	ErrQueueCleared   = errors.New("request queue cleared")
	ErrQueueClosed    = errors.New("request queue closed")
)

var kindSentinels = map[ErrorKind]error{
	KindConfiguration:  ErrNotConfigured,
	KindAuthentication: ErrAuthentication,
	KindRateLimit:      ErrRateLimited,
	KindRequest:        ErrInvalidRequest,
	KindProvider:       ErrProvider,
	KindQueueCleared:   ErrQueueCleared,
}

// GatewayError is the normalized failure surfaced to domain services
type GatewayError struct {
	Kind   ErrorKind
	Label  string
	Status int
	Detail string
	Err    error
}

func (e *GatewayError) Error() string {
	switch e.Kind {
	case KindRequest:
		return fmt.Sprintf("%s: %s", ErrInvalidRequest.Error(), e.Detail)
	case KindProvider:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("amadeus api error in %s: %d", e.Label, e.Status)
	}
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		return sentinel.Error()
	}
	return fmt.Sprintf("gateway error in %s", e.Label)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is
func (e *GatewayError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of a gateway error, or "" for anything else
func KindOf(err error) ErrorKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return ""
}
