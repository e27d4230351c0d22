// Package session implements the data-fetching orchestration layer.
// This file centralizes local validation errors: conditions caught before
// any network call, surfaced directly to the caller without touching the
// store's error fields.
package session

import "errors"

var (
	// ErrEmptyCredentials is returned when login is attempted with a blank
	// email or password.
	ErrEmptyCredentials = errors.New("email and password are required")

	// ErrMissingFields is returned when registration lacks a username,
	// email, or password.
	ErrMissingFields = errors.New("username, email and password are required")

	// ErrPasswordMismatch is returned when the registration password and
	// its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)
