// Package api implements the HTTP client adapter for the remote news API.
//
// This file defines the normalized error type every adapter call returns on
// failure, together with the stable, machine-readable error codes mapped from
// HTTP status classes.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic.
//   - Generic codes (bad_request, unauthorized, conflict, ...) mirror common
//     HTTP status semantics to aid interoperability.
//   - "unreachable" is reserved for transport failures where no response was
//     received at all.
package api

import (
	"errors"
	"fmt"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// ErrCodeUnreachable marks transport-level failures (DNS, refused
	// connection, timeout) where the server never answered.
	ErrCodeUnreachable = "unreachable"
)

// Error is the normalized failure returned by every adapter method.
//
// Fields:
//   - Status: HTTP status code, or 0 when no response was received.
//   - Code: stable machine-readable code (see constants above).
//   - Message: human-readable description; prefers the server's "error" field
//     when present, otherwise a generic status-derived message.
type Error struct {
	Status  int
	Code    string
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.cause }

// AsError unwraps err into *Error when possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	e, ok := AsError(err)
	return ok && e.Status == 401
}

// IsUnreachable reports whether err is a transport failure with no response.
func IsUnreachable(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == ErrCodeUnreachable
}

// Message extracts a human-readable message from err, preferring the
// server-provided one and falling back to fallback for anything else.
// Transport failures always map to the fixed "cannot reach server" text.
func Message(err error, fallback string) string {
	if e, ok := AsError(err); ok && e.Message != "" {
		return e.Message
	}
	return fallback
}

// codeForStatus maps an HTTP status code to a stable error code.
func codeForStatus(status int) string {
	switch status {
	case 400:
		return ErrCodeBadRequest
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeRateLimited
	}
	if status >= 500 {
		return ErrCodeInternal
	}
	return ErrCodeBadRequest
}
