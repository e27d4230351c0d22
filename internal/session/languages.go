package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/metrics"
	"github.com/tbourn/go-news-client/internal/store"
)

// LanguageAPI is the service contract required by LanguagesManager.
type LanguageAPI interface {
	List(ctx context.Context) ([]domain.Language, error)
}

// LanguagesManager orchestrates the supported-locale list and the active
// locale selection.
type LanguagesManager struct {
	store *store.Store
	svc   LanguageAPI
	log   zerolog.Logger
}

// EnsureFresh fetches the language list only when the cache is stale.
func (m *LanguagesManager) EnsureFresh(ctx context.Context) error {
	if !m.store.ShouldFetchLanguages() {
		metrics.CacheHit("languages")
		return nil
	}
	metrics.CacheMiss("languages")
	return m.Fetch(ctx)
}

// Fetch loads the supported languages.
func (m *LanguagesManager) Fetch(ctx context.Context) error {
	gen := m.store.Dispatch(store.LanguagesRequested{}).Languages.Generation
	list, err := m.svc.List(ctx)
	if err != nil {
		msg := api.Message(err, "failed to load languages")
		m.store.Dispatch(store.LanguagesFetchFailed{Message: msg, Gen: gen})
		metrics.Operation("languages", "list", "error")
		return err
	}

	m.store.Dispatch(store.LanguagesFetched{List: list, Gen: gen})
	metrics.Operation("languages", "list", "ok")
	return nil
}

// Set switches the active locale and persists it durably (via the store's
// persistence subscriber).
func (m *LanguagesManager) Set(code string) {
	m.store.Dispatch(store.LanguageSet{Code: code})
	m.log.Debug().Str("language", code).Msg("language changed")
}

// Current returns the active locale code.
func (m *LanguagesManager) Current() string {
	return m.store.State().Languages.Current
}
