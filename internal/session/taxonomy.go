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

// TagAPI is the service contract required by TagsManager.
type TagAPI interface {
	List(ctx context.Context, params services.ListParams) (domain.Page[domain.Tag], error)
	Get(ctx context.Context, id uint) (domain.Tag, error)
	Create(ctx context.Context, in services.TagInput) (domain.Tag, error)
	Update(ctx context.Context, id uint, in services.TagInput) (domain.Tag, error)
	Delete(ctx context.Context, id uint) error
}

// CategoryAPI is the service contract required by CategoriesManager.
type CategoryAPI interface {
	List(ctx context.Context, params services.ListParams) (domain.Page[domain.Category], error)
	Get(ctx context.Context, id uint) (domain.Category, error)
	Create(ctx context.Context, in services.CategoryInput) (domain.Category, error)
	Update(ctx context.Context, id uint, in services.CategoryInput) (domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

// TagsManager orchestrates tag fetches and mutations against the tags slice.
type TagsManager struct {
	store *store.Store
	svc   TagAPI
	ui    *UIManager
	log   zerolog.Logger
}

// EnsureFresh fetches the tag list only when the cache is stale.
func (m *TagsManager) EnsureFresh(ctx context.Context) error {
	if !m.store.ShouldFetchTags() {
		metrics.CacheHit("tags")
		return nil
	}
	metrics.CacheMiss("tags")
	_, err := m.Fetch(ctx, services.ListParams{})
	return err
}

// Fetch loads one page of tags.
func (m *TagsManager) Fetch(ctx context.Context, params services.ListParams) (domain.Page[domain.Tag], error) {
	gen := m.store.Dispatch(store.TagsRequested{}).Tags.Generation
	page, err := m.svc.List(ctx, params)
	if err != nil {
		msg := api.Message(err, "failed to load tags")
		m.store.Dispatch(store.TagsFetchFailed{Message: msg, Gen: gen})
		metrics.Operation("tags", "list", "error")
		return domain.Page[domain.Tag]{}, err
	}

	m.store.Dispatch(store.TagsFetched{Page: page, Gen: gen})
	metrics.Operation("tags", "list", "ok")
	return page, nil
}

// Create adds a tag through the admin endpoint.
func (m *TagsManager) Create(ctx context.Context, in services.TagInput) (domain.Tag, error) {
	m.store.Dispatch(store.TagSaveRequested{})
	tag, err := m.svc.Create(ctx, in)
	if err != nil {
		msg := api.Message(err, "failed to create tag")
		m.store.Dispatch(store.TagSaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("tags", "create", "error")
		return domain.Tag{}, err
	}

	m.store.Dispatch(store.TagCreated{Tag: tag})
	metrics.Operation("tags", "create", "ok")
	return tag, nil
}

// Update replaces a tag by identity.
func (m *TagsManager) Update(ctx context.Context, id uint, in services.TagInput) (domain.Tag, error) {
	m.store.Dispatch(store.TagSaveRequested{})
	tag, err := m.svc.Update(ctx, id, in)
	if err != nil {
		msg := api.Message(err, "failed to update tag")
		m.store.Dispatch(store.TagSaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("tags", "update", "error")
		return domain.Tag{}, err
	}

	m.store.Dispatch(store.TagUpdated{Tag: tag})
	metrics.Operation("tags", "update", "ok")
	return tag, nil
}

// Delete removes a tag by identity.
func (m *TagsManager) Delete(ctx context.Context, id uint) error {
	m.store.Dispatch(store.TagSaveRequested{})
	if err := m.svc.Delete(ctx, id); err != nil {
		msg := api.Message(err, "failed to delete tag")
		m.store.Dispatch(store.TagSaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("tags", "delete", "error")
		return err
	}

	m.store.Dispatch(store.TagDeleted{ID: id})
	metrics.Operation("tags", "delete", "ok")
	return nil
}

// CategoriesManager orchestrates category fetches and mutations against the
// categories slice.
type CategoriesManager struct {
	store *store.Store
	svc   CategoryAPI
	ui    *UIManager
	log   zerolog.Logger
}

// EnsureFresh fetches the category list only when the cache is stale.
func (m *CategoriesManager) EnsureFresh(ctx context.Context) error {
	if !m.store.ShouldFetchCategories() {
		metrics.CacheHit("categories")
		return nil
	}
	metrics.CacheMiss("categories")
	_, err := m.Fetch(ctx, services.ListParams{})
	return err
}

// Fetch loads one page of categories.
func (m *CategoriesManager) Fetch(ctx context.Context, params services.ListParams) (domain.Page[domain.Category], error) {
	gen := m.store.Dispatch(store.CategoriesRequested{}).Categories.Generation
	page, err := m.svc.List(ctx, params)
	if err != nil {
		msg := api.Message(err, "failed to load categories")
		m.store.Dispatch(store.CategoriesFetchFailed{Message: msg, Gen: gen})
		metrics.Operation("categories", "list", "error")
		return domain.Page[domain.Category]{}, err
	}

	m.store.Dispatch(store.CategoriesFetched{Page: page, Gen: gen})
	metrics.Operation("categories", "list", "ok")
	return page, nil
}

// Create adds a category through the admin endpoint.
func (m *CategoriesManager) Create(ctx context.Context, in services.CategoryInput) (domain.Category, error) {
	m.store.Dispatch(store.CategorySaveRequested{})
	cat, err := m.svc.Create(ctx, in)
	if err != nil {
		msg := api.Message(err, "failed to create category")
		m.store.Dispatch(store.CategorySaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("categories", "create", "error")
		return domain.Category{}, err
	}

	m.store.Dispatch(store.CategoryCreated{Category: cat})
	metrics.Operation("categories", "create", "ok")
	return cat, nil
}

// Update replaces a category by identity.
func (m *CategoriesManager) Update(ctx context.Context, id uint, in services.CategoryInput) (domain.Category, error) {
	m.store.Dispatch(store.CategorySaveRequested{})
	cat, err := m.svc.Update(ctx, id, in)
	if err != nil {
		msg := api.Message(err, "failed to update category")
		m.store.Dispatch(store.CategorySaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("categories", "update", "error")
		return domain.Category{}, err
	}

	m.store.Dispatch(store.CategoryUpdated{Category: cat})
	metrics.Operation("categories", "update", "ok")
	return cat, nil
}

// Delete removes a category by identity.
func (m *CategoriesManager) Delete(ctx context.Context, id uint) error {
	m.store.Dispatch(store.CategorySaveRequested{})
	if err := m.svc.Delete(ctx, id); err != nil {
		msg := api.Message(err, "failed to delete category")
		m.store.Dispatch(store.CategorySaveFailed{Message: msg})
		m.ui.AddAlert(store.AlertDanger, msg)
		metrics.Operation("categories", "delete", "error")
		return err
	}

	m.store.Dispatch(store.CategoryDeleted{ID: id})
	metrics.Operation("categories", "delete", "ok")
	return nil
}
