package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/metrics"
	"github.com/tbourn/go-news-client/internal/services"
	"github.com/tbourn/go-news-client/internal/store"
)

// ArticleAPI is the service contract required by ArticlesManager.
type ArticleAPI interface {
	List(ctx context.Context, params services.ArticleListParams) (domain.Page[domain.Article], error)
	Get(ctx context.Context, id uint) (domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (domain.Article, error)
	Create(ctx context.Context, in services.ArticleInput) (domain.Article, error)
	Update(ctx context.Context, id uint, in services.ArticleInput) (domain.Article, error)
	Delete(ctx context.Context, id uint) error
}

// ArticlesManager orchestrates article fetches and mutations against the
// articles slice.
type ArticlesManager struct {
	store *store.Store
	svc   ArticleAPI
	ui    *UIManager
	log   zerolog.Logger
}

// EnsureFresh fetches the article list only when the staleness policy says
// the cache needs it. Safe to call on every activation; a fresh cache costs
// nothing but a counter increment.
func (m *ArticlesManager) EnsureFresh(ctx context.Context) error {
	if !m.store.ShouldFetchArticles() {
		metrics.CacheHit("articles")
		return nil
	}
	metrics.CacheMiss("articles")
	_, err := m.Fetch(ctx, services.ArticleListParams{})
	return err
}

// Fetch loads one page of articles. Zero-valued params fall back to the
// slice's current pagination and filters; explicit values override them.
func (m *ArticlesManager) Fetch(ctx context.Context, params services.ArticleListParams) (domain.Page[domain.Article], error) {
	p := m.mergedParams(params)

	gen := m.store.Dispatch(store.ArticlesRequested{}).Articles.Generation
	page, err := m.svc.List(ctx, p)
	if err != nil {
		msg := api.Message(err, "failed to load articles")
		m.store.Dispatch(store.ArticlesFetchFailed{Message: msg, Gen: gen})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("articles", "list", "error")
		return domain.Page[domain.Article]{}, err
	}

	m.store.Dispatch(store.ArticlesFetched{Page: page, Gen: gen})
	metrics.Operation("articles", "list", "ok")
	return page, nil
}

// FetchByID loads a single article into the slice's Current slot.
func (m *ArticlesManager) FetchByID(ctx context.Context, id uint) (domain.Article, error) {
	gen := m.store.Dispatch(store.ArticleRequested{}).Articles.Generation
	art, err := m.svc.Get(ctx, id)
	if err != nil {
		msg := api.Message(err, "failed to load article")
		m.store.Dispatch(store.ArticleFetchFailed{Message: msg, Gen: gen})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("articles", "get", "error")
		return domain.Article{}, err
	}

	m.store.Dispatch(store.ArticleFetched{Article: art, Gen: gen})
	metrics.Operation("articles", "get", "ok")
	return art, nil
}

// FetchBySlug loads a single article by localized slug into Current.
func (m *ArticlesManager) FetchBySlug(ctx context.Context, slug string) (domain.Article, error) {
	gen := m.store.Dispatch(store.ArticleRequested{}).Articles.Generation
	art, err := m.svc.GetBySlug(ctx, slug)
	if err != nil {
		msg := api.Message(err, "failed to load article")
		m.store.Dispatch(store.ArticleFetchFailed{Message: msg, Gen: gen})
		metrics.Operation("articles", "get", "error")
		return domain.Article{}, err
	}

	m.store.Dispatch(store.ArticleFetched{Article: art, Gen: gen})
	metrics.Operation("articles", "get", "ok")
	return art, nil
}

// Create publishes a new article through the admin endpoint and prepends it
// to the cached list.
func (m *ArticlesManager) Create(ctx context.Context, in services.ArticleInput) (domain.Article, error) {
	m.store.Dispatch(store.ArticleSaveRequested{})
	art, err := m.svc.Create(ctx, in)
	if err != nil {
		msg := api.Message(err, "failed to create article")
		m.store.Dispatch(store.ArticleSaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("articles", "create", "error")
		return domain.Article{}, err
	}

	m.store.Dispatch(store.ArticleCreated{Article: art})
	m.ui.AddAlert(store.AlertSuccess, "article created")
	metrics.Operation("articles", "create", "ok")
	return art, nil
}

// Update replaces an article by identity.
func (m *ArticlesManager) Update(ctx context.Context, id uint, in services.ArticleInput) (domain.Article, error) {
	m.store.Dispatch(store.ArticleSaveRequested{})
	art, err := m.svc.Update(ctx, id, in)
	if err != nil {
		msg := api.Message(err, "failed to update article")
		m.store.Dispatch(store.ArticleSaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("articles", "update", "error")
		return domain.Article{}, err
	}

	m.store.Dispatch(store.ArticleUpdated{Article: art})
	m.ui.AddAlert(store.AlertSuccess, "article updated")
	metrics.Operation("articles", "update", "ok")
	return art, nil
}

// Delete removes an article by identity.
func (m *ArticlesManager) Delete(ctx context.Context, id uint) error {
	m.store.Dispatch(store.ArticleSaveRequested{})
	if err := m.svc.Delete(ctx, id); err != nil {
		msg := api.Message(err, "failed to delete article")
		m.store.Dispatch(store.ArticleSaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("articles", "delete", "error")
		return err
	}

	m.store.Dispatch(store.ArticleDeleted{ID: id})
	m.ui.AddAlert(store.AlertSuccess, "article deleted")
	metrics.Operation("articles", "delete", "ok")
	return nil
}

// SetFilters merges new list filters into the slice and resets paging.
// It does not fetch; call Fetch (or EnsureFresh) afterwards.
func (m *ArticlesManager) SetFilters(f store.ArticleFilters) {
	m.store.Dispatch(store.ArticleFiltersSet{Filters: f})
}

// mergedParams overlays explicit params onto the slice's pagination and
// filter defaults.
func (m *ArticlesManager) mergedParams(params services.ArticleListParams) services.ArticleListParams {
	st := m.store.State().Articles
	p := services.ArticleListParams{
		Page:       st.Pagination.Page,
		PageSize:   st.Pagination.PageSize,
		Search:     st.Filters.Search,
		CategoryID: st.Filters.CategoryID,
		TagID:      st.Filters.TagID,
		Lang:       st.Filters.Lang,
		OrderBy:    st.Filters.OrderBy,
		OrderDir:   st.Filters.OrderDir,
	}
	if params.Page > 0 {
		p.Page = params.Page
	}
	if params.PageSize > 0 {
		p.PageSize = params.PageSize
	}
	if params.Search != "" {
		p.Search = params.Search
	}
	if params.CategoryID != 0 {
		p.CategoryID = params.CategoryID
	}
	if params.TagID != 0 {
		p.TagID = params.TagID
	}
	if params.Lang != "" {
		p.Lang = params.Lang
	}
	if params.OrderBy != "" {
		p.OrderBy = params.OrderBy
	}
	if params.OrderDir != "" {
		p.OrderDir = params.OrderDir
	}
	return p
}
