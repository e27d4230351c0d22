// Package store implements the client's domain state: independent slices for
// auth, articles, tags, categories, languages, and UI, mutated exclusively by
// pure reducers in response to dispatched actions. It also houses the
// staleness policy deciding when a cached collection must be refetched.
//
// This file defines the closed action union. Action is a sealed interface:
// the unexported marker method means every possible action is declared here,
// so reducers can type-switch and treat anything else as a no-op, keeping the
// root reducer total.
//
// Collection fetches carry a Gen field on their success/failure actions: the
// slice generation captured when the matching request action was dispatched.
// A response whose generation no longer matches the slice is stale (a newer
// request has been issued since) and is discarded by the reducer.
package store

import (
	"fmt"
	"strings"

	"github.com/tbourn/go-news-client/internal/domain"
)

// Action is the sealed union of every state transition the store accepts.
type Action interface{ isAction() }

// ---- auth ----

// LoginRequested marks the start of a login or current-user fetch.
type LoginRequested struct{}

// LoginSucceeded installs the authenticated user. Token may be empty when the
// action results from a current-user fetch; the previously held token is then
// retained.
type LoginSucceeded struct {
	User  domain.User
	Token string
}

// LoginFailed records a failed login; the session returns to logged out.
type LoginFailed struct{ Message string }

// LoggedOut resets the auth slice. The persistence subscriber clears the
// durable token in the same dispatch.
type LoggedOut struct{}

// RegisterRequested marks the start of account registration.
type RegisterRequested struct{}

// RegisterSucceeded records a completed registration. The user is not logged
// in by registration alone.
type RegisterSucceeded struct{ User domain.User }

// RegisterFailed records a failed registration.
type RegisterFailed struct{ Message string }

// UserUpdated replaces the cached user profile.
type UserUpdated struct{ User domain.User }

// ---- articles ----

// ArticlesRequested starts a list fetch and bumps the slice generation.
type ArticlesRequested struct{}

// ArticlesFetched installs a fetched page of articles.
type ArticlesFetched struct {
	Page domain.Page[domain.Article]
	Gen  uint64
}

// ArticlesFetchFailed records a failed list fetch. Cached items survive.
type ArticlesFetchFailed struct {
	Message string
	Gen     uint64
}

// ArticleRequested starts a single-article fetch; clears Current.
type ArticleRequested struct{}

// ArticleFetched installs the fetched article as Current.
type ArticleFetched struct {
	Article domain.Article
	Gen     uint64
}

// ArticleFetchFailed records a failed single-article fetch.
type ArticleFetchFailed struct {
	Message string
	Gen     uint64
}

// ArticleSaveRequested marks the start of a create/update/delete mutation.
type ArticleSaveRequested struct{}

// ArticleCreated prepends the created article and makes it Current.
type ArticleCreated struct{ Article domain.Article }

// ArticleUpdated replaces the matching article by identity.
type ArticleUpdated struct{ Article domain.Article }

// ArticleDeleted removes the matching article by identity; removing an
// absent ID is a no-op.
type ArticleDeleted struct{ ID uint }

// ArticleSaveFailed records a failed mutation. Cached items survive.
type ArticleSaveFailed struct{ Message string }

// ArticleFiltersSet merges new filters into the slice and resets paging to
// the first page.
type ArticleFiltersSet struct{ Filters ArticleFilters }

// ---- tags ----

// TagsRequested starts a tag list fetch and bumps the slice generation.
type TagsRequested struct{}

// TagsFetched installs a fetched page of tags.
type TagsFetched struct {
	Page domain.Page[domain.Tag]
	Gen  uint64
}

// TagsFetchFailed records a failed tag list fetch.
type TagsFetchFailed struct {
	Message string
	Gen     uint64
}

// TagSaveRequested marks the start of a tag mutation.
type TagSaveRequested struct{}

// TagCreated prepends the created tag.
type TagCreated struct{ Tag domain.Tag }

// TagUpdated replaces the matching tag by identity.
type TagUpdated struct{ Tag domain.Tag }

// TagDeleted removes the matching tag by identity.
type TagDeleted struct{ ID uint }

// TagSaveFailed records a failed tag mutation.
type TagSaveFailed struct{ Message string }

// ---- categories ----

// CategoriesRequested starts a category list fetch and bumps the generation.
type CategoriesRequested struct{}

// CategoriesFetched installs a fetched page of categories.
type CategoriesFetched struct {
	Page domain.Page[domain.Category]
	Gen  uint64
}

// CategoriesFetchFailed records a failed category list fetch.
type CategoriesFetchFailed struct {
	Message string
	Gen     uint64
}

// CategorySaveRequested marks the start of a category mutation.
type CategorySaveRequested struct{}

// CategoryCreated prepends the created category.
type CategoryCreated struct{ Category domain.Category }

// CategoryUpdated replaces the matching category by identity.
type CategoryUpdated struct{ Category domain.Category }

// CategoryDeleted removes the matching category by identity.
type CategoryDeleted struct{ ID uint }

// CategorySaveFailed records a failed category mutation.
type CategorySaveFailed struct{ Message string }

// ---- languages ----

// LanguagesRequested starts a language list fetch and bumps the generation.
type LanguagesRequested struct{}

// LanguagesFetched installs the supported language list.
type LanguagesFetched struct {
	List []domain.Language
	Gen  uint64
}

// LanguagesFetchFailed records a failed language list fetch.
type LanguagesFetchFailed struct {
	Message string
	Gen     uint64
}

// LanguageSet switches the active locale. The persistence subscriber writes
// the durable app_language key in the same dispatch.
type LanguageSet struct{ Code string }

// ---- ui ----

// DarkModeToggled flips the theme; a non-nil Value forces a specific state.
// The persistence subscriber writes the durable dark_mode key.
type DarkModeToggled struct{ Value *bool }

// SidebarToggled flips the sidebar; a non-nil Value forces a specific state.
type SidebarToggled struct{ Value *bool }

// AlertAdded appends a notification. The Alert carries its ID already so the
// reducer stays deterministic; use NewAlert to build one.
type AlertAdded struct{ Alert Alert }

// AlertDismissed soft-deletes the alert with the given ID.
type AlertDismissed struct{ ID string }

func (LoginRequested) isAction()    {}
func (LoginSucceeded) isAction()    {}
func (LoginFailed) isAction()       {}
func (LoggedOut) isAction()         {}
func (RegisterRequested) isAction() {}
func (RegisterSucceeded) isAction() {}
func (RegisterFailed) isAction()    {}
func (UserUpdated) isAction()       {}

func (ArticlesRequested) isAction()    {}
func (ArticlesFetched) isAction()      {}
func (ArticlesFetchFailed) isAction()  {}
func (ArticleRequested) isAction()     {}
func (ArticleFetched) isAction()       {}
func (ArticleFetchFailed) isAction()   {}
func (ArticleSaveRequested) isAction() {}
func (ArticleCreated) isAction()       {}
func (ArticleUpdated) isAction()       {}
func (ArticleDeleted) isAction()       {}
func (ArticleSaveFailed) isAction()    {}
func (ArticleFiltersSet) isAction()    {}

func (TagsRequested) isAction()    {}
func (TagsFetched) isAction()      {}
func (TagsFetchFailed) isAction()  {}
func (TagSaveRequested) isAction() {}
func (TagCreated) isAction()       {}
func (TagUpdated) isAction()       {}
func (TagDeleted) isAction()       {}
func (TagSaveFailed) isAction()    {}

func (CategoriesRequested) isAction()   {}
func (CategoriesFetched) isAction()     {}
func (CategoriesFetchFailed) isAction() {}
func (CategorySaveRequested) isAction() {}
func (CategoryCreated) isAction()       {}
func (CategoryUpdated) isAction()       {}
func (CategoryDeleted) isAction()       {}
func (CategorySaveFailed) isAction()    {}

func (LanguagesRequested) isAction()   {}
func (LanguagesFetched) isAction()     {}
func (LanguagesFetchFailed) isAction() {}
func (LanguageSet) isAction()          {}

func (DarkModeToggled) isAction() {}
func (SidebarToggled) isAction()  {}
func (AlertAdded) isAction()      {}
func (AlertDismissed) isAction()  {}

// ActionName returns a stable, human-readable name for a (used as a metrics
// label and in debug logs).
func ActionName(a Action) string {
	name := fmt.Sprintf("%T", a)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
