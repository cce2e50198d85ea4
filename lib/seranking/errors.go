package seranking

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks construction-time failures: missing credentials,
// a malformed base url, an unusable store. Nothing is retried.
var ErrConfiguration = errors.New("invalid configuration")

// ErrInvalidArgument marks malformed caller input rejected before any
// network traffic.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnsupported marks operations the remote api does not offer.
var ErrUnsupported = errors.New("unsupported operation")

// AuthError reports a rejected login call.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed with status %d", e.StatusCode)
}

// APIError reports a non-2xx response from an authenticated call. Code
// and Message carry the remote error body when it was decodable.
type APIError struct {
	Method     string
	StatusCode int
	Code       int64
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api method %q failed with status %d", e.Method, e.StatusCode)
	if e.Code != 0 {
		msg += fmt.Sprintf(", code %d", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
