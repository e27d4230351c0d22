package store

import (
	"encoding/json"
	"time"

	"golang.org/x/text/language"

	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/storage"
)

// Config fixes the per-slice cache validity windows and the defaults applied
// when durable storage holds no value. Windows are set at store construction
// and never per call.
type Config struct {
	ArticlesTTL     time.Duration // articles list validity (default 5m)
	TaxonomyTTL     time.Duration // tags/categories/languages validity (default 10m)
	DefaultLanguage string        // locale used when none is persisted
	DefaultDarkMode bool          // theme used when none is persisted
}

func (c Config) withDefaults() Config {
	if c.ArticlesTTL <= 0 {
		c.ArticlesTTL = 5 * time.Minute
	}
	if c.TaxonomyTTL <= 0 {
		c.TaxonomyTTL = 10 * time.Minute
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	return c
}

// AuthState is the authentication slice.
//
// Invariant: IsAuthenticated == (Token != ""). Both are derived together in
// every transition; nothing else writes them.
type AuthState struct {
	User            *domain.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// ArticleFilters narrow the article list fetch. Zero values mean "no filter".
type ArticleFilters struct {
	Search     string
	CategoryID uint
	TagID      uint
	Lang       string
	OrderBy    string
	OrderDir   string
}

// merge overlays non-zero fields of other onto f.
func (f ArticleFilters) merge(other ArticleFilters) ArticleFilters {
	if other.Search != "" {
		f.Search = other.Search
	}
	if other.CategoryID != 0 {
		f.CategoryID = other.CategoryID
	}
	if other.TagID != 0 {
		f.TagID = other.TagID
	}
	if other.Lang != "" {
		f.Lang = other.Lang
	}
	if other.OrderBy != "" {
		f.OrderBy = other.OrderBy
	}
	if other.OrderDir != "" {
		f.OrderDir = other.OrderDir
	}
	return f
}

// ArticlesState is the articles slice: a cached collection plus the active
// list filters.
type ArticlesState struct {
	Collection[domain.Article]
	Filters ArticleFilters
}

// TagsState is the tags slice.
type TagsState struct {
	Collection[domain.Tag]
}

// CategoriesState is the categories slice.
type CategoriesState struct {
	Collection[domain.Category]
}

// LanguagesState is the locales slice. Current is the active locale code,
// persisted on every change.
type LanguagesState struct {
	List        []domain.Language
	Current     string
	Loading     bool
	Error       string
	LastFetched time.Time
	Generation  uint64
}

// ShouldFetch applies the staleness policy to the language list.
func (s LanguagesState) ShouldFetch(now time.Time, ttl time.Duration) bool {
	if s.LastFetched.IsZero() {
		return true
	}
	if now.Sub(s.LastFetched) > ttl {
		return true
	}
	if len(s.List) == 0 && s.Error != "" {
		return true
	}
	return false
}

// AppState is the complete client state: one independent slice per domain.
// Slices never read each other; the root reducer fans actions out to each
// and recomposes the result.
type AppState struct {
	Auth       AuthState
	Articles   ArticlesState
	Tags       TagsState
	Categories CategoriesState
	Languages  LanguagesState
	UI         UIState
}

// Initial builds the startup state, hydrating auth, language, and theme from
// durable storage when kv is non-nil. Storage read errors fall back to
// defaults: a corrupt local cache must never prevent startup.
func Initial(cfg Config, kv storage.KV) AppState {
	cfg = cfg.withDefaults()

	st := AppState{
		Articles: ArticlesState{Collection: Collection[domain.Article]{
			Items:      []domain.Article{},
			Pagination: domain.Pagination{Page: 1, PageSize: 10},
		}},
		Tags:       TagsState{Collection: Collection[domain.Tag]{Items: []domain.Tag{}}},
		Categories: CategoriesState{Collection: Collection[domain.Category]{Items: []domain.Category{}}},
		Languages:  LanguagesState{Current: normalizeLocale(cfg.DefaultLanguage, "en")},
		UI:         UIState{DarkMode: cfg.DefaultDarkMode, SidebarOpen: true, Alerts: []Alert{}},
	}
	if kv == nil {
		return st
	}

	if tok, ok, err := kv.Get(storage.KeyAuthToken); err == nil && ok && tok != "" {
		st.Auth.Token = tok
		st.Auth.IsAuthenticated = true
	}
	if raw, ok, err := kv.Get(storage.KeyAuthUser); err == nil && ok && raw != "" {
		var u domain.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			st.Auth.User = &u
		}
	}
	if code, ok, err := kv.Get(storage.KeyLanguage); err == nil && ok && code != "" {
		st.Languages.Current = normalizeLocale(code, st.Languages.Current)
	}
	if v, ok, err := kv.Get(storage.KeyDarkMode); err == nil && ok {
		st.UI.DarkMode = v == "true"
	}
	return st
}

// normalizeLocale reduces a locale code to its base language ("zh-TW" → "zh"),
// returning fallback for anything unparseable.
func normalizeLocale(code, fallback string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return fallback
	}
	base, _ := tag.Base()
	return base.String()
}
