package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/metrics"
	"github.com/tbourn/go-news-client/internal/store"
)

// AuthAPI is the service contract required by AuthManager.
type AuthAPI interface {
	// Login exchanges credentials for a token and user profile.
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)

	// Register creates an account without logging it in.
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)

	// CurrentUser fetches the profile for the stored bearer token.
	CurrentUser(ctx context.Context) (domain.User, error)
}

// AuthManager orchestrates the session lifecycle: login, registration,
// logout, and the startup bootstrap that revalidates a persisted token.
type AuthManager struct {
	store *store.Store
	svc   AuthAPI
	ui    *UIManager
	log   zerolog.Logger
}

// Login authenticates with email and password. Blank inputs fail locally
// with ErrEmptyCredentials before any network or store activity. On success
// the token and user are installed (and persisted via the store's
// subscriber); on failure the auth slice records the message and the error
// is returned for local handling.
func (m *AuthManager) Login(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, ErrEmptyCredentials
	}

	m.store.Dispatch(store.LoginRequested{})
	res, err := m.svc.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		msg := api.Message(err, "login failed, please check your credentials")
		m.store.Dispatch(store.LoginFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("auth", "login", "error")
		return domain.User{}, err
	}

	m.store.Dispatch(store.LoginSucceeded{User: res.User, Token: res.Token})
	m.ui.AddAlert(store.AlertSuccess, "signed in")
	metrics.Operation("auth", "login", "ok")
	m.log.Info().Str("username", res.User.Username).Msg("login")
	return res.User, nil
}

// Register creates a new account. The password confirmation is checked
// locally; a mismatch never reaches the network. Success does not log the
// user in.
func (m *AuthManager) Register(ctx context.Context, reg domain.Registration, confirm string) (domain.User, error) {
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return domain.User{}, ErrMissingFields
	}
	if reg.Password != confirm {
		return domain.User{}, ErrPasswordMismatch
	}

	m.store.Dispatch(store.RegisterRequested{})
	user, err := m.svc.Register(ctx, reg)
	if err != nil {
		msg := api.Message(err, "registration failed")
		m.store.Dispatch(store.RegisterFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("auth", "register", "error")
		return domain.User{}, err
	}

	m.store.Dispatch(store.RegisterSucceeded{User: user})
	m.ui.AddAlert(store.AlertSuccess, "account created, you can sign in now")
	metrics.Operation("auth", "register", "ok")
	return user, nil
}

// Logout ends the session. The durable token is cleared synchronously with
// the state transition, so a process reading storage immediately afterwards
// cannot observe a token for a logged-out session.
func (m *AuthManager) Logout() {
	m.store.Dispatch(store.LoggedOut{})
	m.ui.AddAlert(store.AlertInfo, "signed out")
	m.log.Info().Msg("logout")
}

// FetchCurrentUser revalidates the stored token by loading the profile it
// belongs to. An unauthorized answer means the whole session is invalid:
// this is the one permitted cross-slice effect, and it triggers a full
// logout instead of a plain failure.
func (m *AuthManager) FetchCurrentUser(ctx context.Context) (domain.User, error) {
	m.store.Dispatch(store.LoginRequested{})
	user, err := m.svc.CurrentUser(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			m.store.Dispatch(store.LoggedOut{})
		} else {
			m.store.Dispatch(store.LoginFailed{Message: api.Message(err, "failed to load profile")})
		}
		metrics.Operation("auth", "current_user", "error")
		return domain.User{}, err
	}

	// Empty token in the action keeps the stored one.
	m.store.Dispatch(store.LoginSucceeded{User: user})
	metrics.Operation("auth", "current_user", "ok")
	return user, nil
}

// Bootstrap runs once at startup: when a token is persisted but no user is
// cached, it revalidates the token. A token that is already expired by its
// own exp claim is discarded locally without a network round trip.
func (m *AuthManager) Bootstrap(ctx context.Context) error {
	st := m.store.State().Auth
	if !st.IsAuthenticated || st.User != nil {
		return nil
	}
	if tokenExpired(st.Token, m.store.Now()) {
		m.log.Debug().Msg("persisted token expired, discarding")
		m.store.Dispatch(store.LoggedOut{})
		return nil
	}
	_, err := m.FetchCurrentUser(ctx)
	return err
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the client holds no key material. Tokens that cannot be parsed
// or carry no exp claim are handed to the server to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
