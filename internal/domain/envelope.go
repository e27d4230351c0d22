// Package domain defines the entity types exchanged with the remote news API.
// This file holds the JSON envelopes wrapping those entities on the wire.
package domain

// Envelope wraps every single-entity response body: {"data": {...}}.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// Page is the pagination envelope returned by every list endpoint:
// {"data": [...], "total": n, "page": p, "page_size": s, "total_pages": tp}.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// Pagination is the client-side cursor kept per cached collection. It mirrors
// the envelope fields minus the data itself.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response: a bearer token plus the authenticated
// user's profile.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Registration is the register request body. FirstName and LastName are
// optional on the wire.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
