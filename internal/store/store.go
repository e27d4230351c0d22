package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/metrics"
	"github.com/tbourn/go-news-client/internal/storage"
)

// Subscriber observes completed dispatches. Subscribers run synchronously
// after the state swap and before Dispatch returns, in registration order.
// They must not block; they may dispatch further actions.
type Subscriber func(prev, next AppState, a Action)

// Options configures a Store.
type Options struct {
	// Config fixes cache windows and hydration defaults.
	Config Config
	// Storage, when non-nil, hydrates the initial state and receives the
	// durable writes mirrored from auth/language/theme transitions.
	Storage storage.KV
	// Clock supplies "now" for staleness stamps; nil means time.Now.
	// Tests pin it.
	Clock func() time.Time
	// Logger receives dispatch debug logs.
	Logger zerolog.Logger
}

// Store holds the application state and is its single mutation entry point.
// Dispatches apply synchronously and run to completion without interleaving:
// the reducer never suspends, so no two dispatches can observe a partially
// applied transition. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	state AppState
	cfg   Config
	clock func() time.Time
	log   zerolog.Logger

	subMu sync.RWMutex
	subs  []Subscriber
}

// New constructs a Store, hydrating the initial state from opts.Storage when
// provided and attaching the persistence subscriber that mirrors auth,
// language, and theme transitions into durable storage.
func New(opts Options) *Store {
	cfg := opts.Config.withDefaults()
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	s := &Store{
		state: Initial(cfg, opts.Storage),
		cfg:   cfg,
		clock: clock,
		log:   opts.Logger,
	}
	if opts.Storage != nil {
		s.Subscribe(persistence(opts.Storage, opts.Logger))
	}
	return s
}

// State returns a snapshot of the current application state. Slices inside
// the snapshot are never mutated by later dispatches.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a through the root reducer and returns the resulting
// state. Subscribers run before Dispatch returns, so durable side effects
// (token persistence, logout cleanup) are complete when the caller resumes.
func (s *Store) Dispatch(a Action) AppState {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a, s.clock())
	s.state = next
	s.mu.Unlock()

	name := ActionName(a)
	metrics.Dispatch(name)
	s.log.Debug().Str("action", name).Msg("dispatch")

	s.subMu.RLock()
	subs := s.subs
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(prev, next, a)
	}
	return next
}

// Subscribe registers fn for all future dispatches.
func (s *Store) Subscribe(fn Subscriber) {
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

// Config returns the store's cache configuration.
func (s *Store) Config() Config { return s.cfg }

// Now reads the store's clock.
func (s *Store) Now() time.Time { return s.clock() }

// ShouldFetchArticles applies the staleness policy to the articles slice.
func (s *Store) ShouldFetchArticles() bool {
	st := s.State()
	return st.Articles.ShouldFetch(s.clock(), s.cfg.ArticlesTTL)
}

// ShouldFetchTags applies the staleness policy to the tags slice.
func (s *Store) ShouldFetchTags() bool {
	st := s.State()
	return st.Tags.ShouldFetch(s.clock(), s.cfg.TaxonomyTTL)
}

// ShouldFetchCategories applies the staleness policy to the categories slice.
func (s *Store) ShouldFetchCategories() bool {
	st := s.State()
	return st.Categories.ShouldFetch(s.clock(), s.cfg.TaxonomyTTL)
}

// ShouldFetchLanguages applies the staleness policy to the languages slice.
func (s *Store) ShouldFetchLanguages() bool {
	st := s.State()
	return st.Languages.ShouldFetch(s.clock(), s.cfg.TaxonomyTTL)
}
