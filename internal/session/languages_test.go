package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/store"
)

type fakeLanguages struct {
	listCalls int
	list      []domain.Language
	err       error
}

func (f *fakeLanguages) List(ctx context.Context) ([]domain.Language, error) {
	f.listCalls++
	return f.list, f.err
}

func newLanguagesManager(svc LanguageAPI, clock func() time.Time) (*LanguagesManager, *store.Store) {
	st := store.New(store.Options{
		Config: store.Config{TaxonomyTTL: 10 * time.Minute, DefaultLanguage: "en"},
		Clock:  clock,
	})
	return &LanguagesManager{store: st, svc: svc, log: zerolog.Nop()}, st
}

func TestLanguagesFetch_PopulatesList(t *testing.T) {
	svc := &fakeLanguages{list: []domain.Language{
		{ID: 1, Code: "en", IsDefault: true},
		{ID: 2, Code: "fr"},
	}}
	m, st := newLanguagesManager(svc, nil)

	if err := m.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	langs := st.State().Languages
	if len(langs.List) != 2 || langs.List[1].Code != "fr" {
		t.Fatalf("list = %+v", langs.List)
	}
	if langs.Current != "en" {
		t.Fatalf("fetch must not move the active locale, got %q", langs.Current)
	}
}

func TestLanguagesFetch_FailureKeepsCurrent(t *testing.T) {
	svc := &fakeLanguages{err: errors.New("down")}
	m, st := newLanguagesManager(svc, nil)

	if err := m.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	langs := st.State().Languages
	if langs.Error != "failed to load languages" {
		t.Fatalf("error = %q", langs.Error)
	}
	if langs.Current != "en" {
		t.Fatalf("current = %q", langs.Current)
	}
}

func TestLanguagesEnsureFresh_SkipsFreshList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeLanguages{list: []domain.Language{{Code: "en"}}}
	m, _ := newLanguagesManager(svc, func() time.Time { return now })

	if err := m.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := m.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if svc.listCalls != 1 {
		t.Fatalf("fresh list refetched, calls = %d", svc.listCalls)
	}
}

func TestLanguagesSetAndCurrent(t *testing.T) {
	m, st := newLanguagesManager(&fakeLanguages{}, nil)

	if m.Current() != "en" {
		t.Fatalf("default = %q", m.Current())
	}
	m.Set("fr")
	if m.Current() != "fr" {
		t.Fatalf("current = %q", m.Current())
	}
	if st.State().Languages.Current != "fr" {
		t.Fatalf("state disagrees with manager")
	}
}

func TestUIManager_AlertLifecycle(t *testing.T) {
	st := store.New(store.Options{Config: store.Config{DefaultLanguage: "en"}})
	ui := &UIManager{store: st}

	id := ui.AddAlert(store.AlertInfo, "hello")
	if id == "" {
		t.Fatalf("empty alert id")
	}
	if got := ui.ActiveAlerts(); len(got) != 1 || got[0].Message != "hello" {
		t.Fatalf("active = %+v", got)
	}
	ui.DismissAlert(id)
	if got := ui.ActiveAlerts(); len(got) != 0 {
		t.Fatalf("alert survived dismissal: %+v", got)
	}
}

func TestUIManager_Toggles(t *testing.T) {
	st := store.New(store.Options{Config: store.Config{DefaultLanguage: "en"}})
	ui := &UIManager{store: st}

	ui.ToggleDarkMode(nil)
	if !st.State().UI.DarkMode {
		t.Fatalf("dark mode not toggled")
	}
	off := false
	ui.ToggleDarkMode(&off)
	if st.State().UI.DarkMode {
		t.Fatalf("forced value ignored")
	}

	// Sidebar starts open.
	ui.ToggleSidebar(nil)
	if st.State().UI.SidebarOpen {
		t.Fatalf("sidebar not toggled")
	}
}
