// Package session implements the data-fetching orchestration layer: one
// manager per domain tying together the state store, the staleness policy,
// and the domain services. Every imperative operation follows the same
// protocol: dispatch a request action, await the service call with merged
// parameters, dispatch success or failure, and hand the result (or the
// error) back to the caller. EnsureFresh consults the staleness policy and
// fetches at most once per call.
//
// Failures surface twice on purpose: the slice's error field for passive
// inline display, and the returned error so callers can react locally.
// Alerts are a third, explicit channel and are never derived automatically
// from slice errors.
package session

import (
	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/services"
	"github.com/tbourn/go-news-client/internal/store"
)

// Session bundles the per-domain managers over one shared store.
type Session struct {
	Store      *store.Store
	Auth       *AuthManager
	Articles   *ArticlesManager
	Tags       *TagsManager
	Categories *CategoriesManager
	Languages  *LanguagesManager
	UI         *UIManager
}

// New wires a Session from a store and an HTTP client adapter.
func New(st *store.Store, client *api.Client, lg zerolog.Logger) *Session {
	ui := &UIManager{store: st}
	return &Session{
		Store:      st,
		UI:         ui,
		Auth:       &AuthManager{store: st, svc: &services.AuthService{API: client}, ui: ui, log: lg},
		Articles:   &ArticlesManager{store: st, svc: &services.ArticleService{API: client}, ui: ui, log: lg},
		Tags:       &TagsManager{store: st, svc: &services.TagService{API: client}, ui: ui, log: lg},
		Categories: &CategoriesManager{store: st, svc: &services.CategoryService{API: client}, ui: ui, log: lg},
		Languages:  &LanguagesManager{store: st, svc: &services.LanguageService{API: client}, log: lg},
	}
}
