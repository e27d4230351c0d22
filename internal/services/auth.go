package services

import (
	"context"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
)

// AuthService performs authentication operations against the remote API.
//
// Note that AuthService does not persist credentials; the orchestration layer
// owns the token lifecycle and the store mirrors it.
type AuthService struct {
	// API is the HTTP client adapter used for all requests.
	API *api.Client
}

// Login exchanges credentials for a bearer token and the user profile.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	var out domain.LoginResult
	if err := s.API.Post(ctx, pathLogin, creds, &out); err != nil {
		return domain.LoginResult{}, err
	}
	return out, nil
}

// Register creates a new account. The server responds with the created user
// only; registration does not log the user in.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := s.API.Post(ctx, pathRegister, reg, &out); err != nil {
		return domain.User{}, err
	}
	return out.User, nil
}

// CurrentUser fetches the profile belonging to the bearer token the adapter
// injects. A 401 here means the stored token is no longer valid.
func (s *AuthService) CurrentUser(ctx context.Context) (domain.User, error) {
	var out domain.Envelope[domain.User]
	if err := s.API.Get(ctx, pathCurrentUser, nil, &out); err != nil {
		return domain.User{}, err
	}
	return out.Data, nil
}
