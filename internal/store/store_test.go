package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/storage"
)

func pinnedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestInitial_HydratesFromStorage(t *testing.T) {
	kv := storage.NewMemory()
	user := domain.User{ID: 7, Username: "ada"}
	raw, _ := json.Marshal(user)
	_ = kv.Set(storage.KeyAuthToken, "persisted-token")
	_ = kv.Set(storage.KeyAuthUser, string(raw))
	_ = kv.Set(storage.KeyLanguage, "fr")
	_ = kv.Set(storage.KeyDarkMode, "true")

	s := Initial(Config{DefaultLanguage: "en"}, kv)
	if !s.Auth.IsAuthenticated || s.Auth.Token != "persisted-token" {
		t.Fatalf("auth = %+v", s.Auth)
	}
	if s.Auth.User == nil || s.Auth.User.Username != "ada" {
		t.Fatalf("user = %+v", s.Auth.User)
	}
	if s.Languages.Current != "fr" {
		t.Fatalf("language = %q", s.Languages.Current)
	}
	if !s.UI.DarkMode {
		t.Fatalf("dark mode not hydrated")
	}
}

func TestInitial_CorruptUserFallsBack(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Set(storage.KeyAuthToken, "tok")
	_ = kv.Set(storage.KeyAuthUser, "{not json")
	_ = kv.Set(storage.KeyLanguage, "not a locale !!")

	s := Initial(Config{DefaultLanguage: "en"}, kv)
	if s.Auth.User != nil {
		t.Fatalf("corrupt user should be ignored")
	}
	if !s.Auth.IsAuthenticated {
		t.Fatalf("token should still hydrate")
	}
	if s.Languages.Current != "en" {
		t.Fatalf("bad locale should fall back to default, got %q", s.Languages.Current)
	}
}

func TestInitial_NormalizesRegionedLocale(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Set(storage.KeyLanguage, "fr-CA")
	s := Initial(Config{DefaultLanguage: "en"}, kv)
	if s.Languages.Current != "fr" {
		t.Fatalf("locale = %q, want base language", s.Languages.Current)
	}
}

func TestDispatch_PersistsLoginAndClearsOnLogout(t *testing.T) {
	kv := storage.NewMemory()
	s := New(Options{Config: Config{DefaultLanguage: "en"}, Storage: kv})

	s.Dispatch(LoginSucceeded{User: domain.User{ID: 1, Username: "ada"}, Token: "tok"})

	if v, ok, _ := kv.Get(storage.KeyAuthToken); !ok || v != "tok" {
		t.Fatalf("token not persisted: %q %v", v, ok)
	}
	if raw, ok, _ := kv.Get(storage.KeyAuthUser); !ok || raw == "" {
		t.Fatalf("user not persisted")
	}

	// Logout must clear durable credentials before Dispatch returns.
	s.Dispatch(LoggedOut{})
	if _, ok, _ := kv.Get(storage.KeyAuthToken); ok {
		t.Fatalf("token survived logout")
	}
	if _, ok, _ := kv.Get(storage.KeyAuthUser); ok {
		t.Fatalf("user survived logout")
	}
}

func TestDispatch_EmptyTokenLoginDoesNotOverwriteStoredToken(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Set(storage.KeyAuthToken, "stored")
	s := New(Options{Config: Config{DefaultLanguage: "en"}, Storage: kv})

	s.Dispatch(LoginSucceeded{User: domain.User{ID: 1}})
	if v, _, _ := kv.Get(storage.KeyAuthToken); v != "stored" {
		t.Fatalf("revalidation overwrote token: %q", v)
	}
}

func TestDispatch_PersistsLanguageAndTheme(t *testing.T) {
	kv := storage.NewMemory()
	s := New(Options{Config: Config{DefaultLanguage: "en", DefaultDarkMode: false}, Storage: kv})

	s.Dispatch(LanguageSet{Code: "fr"})
	if v, _, _ := kv.Get(storage.KeyLanguage); v != "fr" {
		t.Fatalf("language not persisted: %q", v)
	}

	s.Dispatch(DarkModeToggled{})
	if v, _, _ := kv.Get(storage.KeyDarkMode); v != "true" {
		t.Fatalf("dark mode not persisted: %q", v)
	}
	s.Dispatch(DarkModeToggled{})
	if v, _, _ := kv.Get(storage.KeyDarkMode); v != "false" {
		t.Fatalf("second toggle not persisted: %q", v)
	}
}

func TestDispatch_ReturnsPostReduceState(t *testing.T) {
	s := New(Options{Config: Config{DefaultLanguage: "en"}})
	next := s.Dispatch(ArticlesRequested{})
	if next.Articles.Generation != 1 || !next.Articles.Loading {
		t.Fatalf("returned state is not post-reduce: %+v", next.Articles.Collection)
	}
	// Callers pair the returned generation with the eventual response.
	next = s.Dispatch(ArticlesRequested{})
	if next.Articles.Generation != 2 {
		t.Fatalf("generation = %d", next.Articles.Generation)
	}
}

func TestSubscribe_RunsInOrderBeforeDispatchReturns(t *testing.T) {
	s := New(Options{Config: Config{DefaultLanguage: "en"}})
	var order []string
	s.Subscribe(func(prev, next AppState, a Action) { order = append(order, "first") })
	s.Subscribe(func(prev, next AppState, a Action) { order = append(order, "second") })

	s.Dispatch(SidebarToggled{})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v", order)
	}
}

func TestShouldFetchHelpers_UsePinnedClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	s := New(Options{
		Config: Config{ArticlesTTL: 5 * time.Minute, TaxonomyTTL: 10 * time.Minute, DefaultLanguage: "en"},
		Clock:  func() time.Time { return clock },
	})

	if !s.ShouldFetchArticles() {
		t.Fatalf("empty cache must want a fetch")
	}

	gen := s.Dispatch(ArticlesRequested{}).Articles.Generation
	s.Dispatch(ArticlesFetched{Page: artPage(1), Gen: gen})
	if s.ShouldFetchArticles() {
		t.Fatalf("fresh cache refetched")
	}

	clock = now.Add(4 * time.Minute)
	if s.ShouldFetchArticles() {
		t.Fatalf("cache expired early")
	}
	clock = now.Add(6 * time.Minute)
	if !s.ShouldFetchArticles() {
		t.Fatalf("cache did not expire")
	}

	// Taxonomy uses the longer window.
	tgen := s.Dispatch(TagsRequested{}).Tags.Generation
	s.Dispatch(TagsFetched{Page: domain.Page[domain.Tag]{Data: []domain.Tag{{ID: 1}}}, Gen: tgen})
	clock = clock.Add(9 * time.Minute)
	if s.ShouldFetchTags() {
		t.Fatalf("taxonomy window should still be open")
	}
	clock = clock.Add(2 * time.Minute)
	if !s.ShouldFetchTags() {
		t.Fatalf("taxonomy window should have closed")
	}
}

func TestShouldFetchLanguages(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(Options{
		Config: Config{TaxonomyTTL: 10 * time.Minute, DefaultLanguage: "en"},
		Clock:  pinnedClock(now),
	})
	if !s.ShouldFetchLanguages() {
		t.Fatalf("empty language list must want a fetch")
	}
	gen := s.Dispatch(LanguagesRequested{}).Languages.Generation
	s.Dispatch(LanguagesFetched{List: []domain.Language{{Code: "en"}}, Gen: gen})
	if s.ShouldFetchLanguages() {
		t.Fatalf("fresh language list refetched")
	}
}

func TestActionName(t *testing.T) {
	if got := ActionName(ArticlesFetched{}); got != "ArticlesFetched" {
		t.Fatalf("ActionName = %q", got)
	}
	if got := ActionName(LoggedOut{}); got != "LoggedOut" {
		t.Fatalf("ActionName = %q", got)
	}
}
