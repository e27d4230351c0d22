package store

import (
	"testing"
	"time"

	"github.com/tbourn/go-news-client/internal/domain"
)

func art(id uint) domain.Article { return domain.Article{ID: id} }

func artPage(ids ...uint) domain.Page[domain.Article] {
	p := domain.Page[domain.Article]{Page: 1, PageSize: 10}
	for _, id := range ids {
		p.Data = append(p.Data, art(id))
	}
	p.Total = int64(len(ids))
	p.TotalPages = 1
	return p
}

func TestShouldFetch_Scenarios(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 5 * time.Minute

	tests := []struct {
		name string
		c    Collection[domain.Article]
		want bool
	}{
		{
			name: "never fetched",
			c:    Collection[domain.Article]{},
			want: true,
		},
		{
			name: "fresh with items",
			c: Collection[domain.Article]{
				Items:       []domain.Article{art(1)},
				LastFetched: now.Add(-time.Minute),
			},
			want: false,
		},
		{
			name: "expired window",
			c: Collection[domain.Article]{
				Items:       []domain.Article{art(1)},
				LastFetched: now.Add(-6 * time.Minute),
			},
			want: true,
		},
		{
			name: "empty but valid stays cached",
			c: Collection[domain.Article]{
				Items:       []domain.Article{},
				LastFetched: now.Add(-time.Minute),
			},
			want: false,
		},
		{
			name: "failed fetch left nothing usable",
			c: Collection[domain.Article]{
				Items:       []domain.Article{},
				Error:       "boom",
				LastFetched: now.Add(-time.Minute),
			},
			want: true,
		},
		{
			name: "error but stale items remain usable",
			c: Collection[domain.Article]{
				Items:       []domain.Article{art(1)},
				Error:       "boom",
				LastFetched: now.Add(-time.Minute),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.ShouldFetch(now, ttl); got != tt.want {
				t.Fatalf("ShouldFetch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollection_FetchCycle(t *testing.T) {
	now := time.Now()
	var c Collection[domain.Article]

	c = c.requested()
	if !c.Loading || c.Generation != 1 {
		t.Fatalf("after requested: loading=%v gen=%d", c.Loading, c.Generation)
	}

	c = c.fetched(artPage(1, 2), 1, now)
	if c.Loading {
		t.Fatalf("loading should clear on fetch")
	}
	if len(c.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(c.Items))
	}
	if !c.LastFetched.Equal(now) {
		t.Fatalf("LastFetched = %v, want %v", c.LastFetched, now)
	}
	if c.Pagination.Total != 2 {
		t.Fatalf("pagination total = %d", c.Pagination.Total)
	}
}

func TestCollection_StaleGenerationDiscarded(t *testing.T) {
	now := time.Now()
	var c Collection[domain.Article]

	c = c.requested() // gen 1
	c = c.requested() // gen 2, first request is now stale

	c = c.fetched(artPage(1), 1, now)
	if len(c.Items) != 0 || !c.LastFetched.IsZero() {
		t.Fatalf("stale fetch applied: items=%d lastFetched=%v", len(c.Items), c.LastFetched)
	}
	if !c.Loading {
		t.Fatalf("loading must stay on while the live request is in flight")
	}

	c = c.fetchFailed("too late", 1)
	if c.Error != "" {
		t.Fatalf("stale failure applied: %q", c.Error)
	}

	c = c.fetched(artPage(2, 3), 2, now)
	if len(c.Items) != 2 {
		t.Fatalf("live fetch discarded: items=%d", len(c.Items))
	}
}

func TestCollection_FetchFailedKeepsItems(t *testing.T) {
	now := time.Now()
	var c Collection[domain.Article]
	c = c.requested()
	c = c.fetched(artPage(1, 2), 1, now)

	c = c.requested()
	c = c.fetchFailed("server exploded", 2)
	if c.Error != "server exploded" {
		t.Fatalf("error = %q", c.Error)
	}
	if len(c.Items) != 2 {
		t.Fatalf("failed fetch dropped cached items: %d", len(c.Items))
	}
	if c.Loading {
		t.Fatalf("loading should clear on failure")
	}
}

func TestCollection_CurrentRequestedClearsCurrent(t *testing.T) {
	a := art(7)
	c := Collection[domain.Article]{Current: &a}
	c = c.currentRequested()
	if c.Current != nil {
		t.Fatalf("Current should be cleared while a different entity loads")
	}
}

func TestCollection_CurrentFetchedDoesNotTouchLastFetched(t *testing.T) {
	var c Collection[domain.Article]
	c = c.requested()
	c = c.currentFetched(art(3), 1)
	if c.Current == nil || c.Current.ID != 3 {
		t.Fatalf("Current not installed")
	}
	if !c.LastFetched.IsZero() {
		t.Fatalf("single-entity fetch must not refresh the whole collection")
	}
}

func TestCollection_CreatedPrepends(t *testing.T) {
	now := time.Now()
	var c Collection[domain.Article]
	c = c.requested()
	c = c.fetched(artPage(1), 1, now)

	c = c.created(art(9))
	if c.Items[0].ID != 9 || len(c.Items) != 2 {
		t.Fatalf("created not prepended: %+v", c.Items)
	}
	if c.Current == nil || c.Current.ID != 9 {
		t.Fatalf("created entity should become Current")
	}
}

func TestCollection_UpdatedReplacesByIdentity(t *testing.T) {
	now := time.Now()
	var c Collection[domain.Article]
	c = c.requested()
	c = c.fetched(artPage(1, 2, 3), 1, now)

	updated := art(2)
	updated.Status = "published"
	c = c.updated(updated, 2, articleID)
	if c.Items[1].Status != "published" {
		t.Fatalf("item 2 not replaced: %+v", c.Items[1])
	}
	if c.Items[0].ID != 1 || c.Items[2].ID != 3 {
		t.Fatalf("other items disturbed: %+v", c.Items)
	}
}

func TestCollection_RemovedExactlyOne(t *testing.T) {
	now := time.Now()
	cur := art(2)
	var c Collection[domain.Article]
	c = c.requested()
	c = c.fetched(artPage(1, 2, 3), 1, now)
	c.Current = &cur

	c = c.removed(2, articleID)
	if len(c.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(c.Items))
	}
	if c.Current != nil {
		t.Fatalf("Current should clear when it was the removed entity")
	}

	// Removing the same ID again is a no-op.
	c = c.removed(2, articleID)
	if len(c.Items) != 2 {
		t.Fatalf("repeat removal changed items: %d", len(c.Items))
	}
}

func TestCollection_FetchedNilDataBecomesEmptySlice(t *testing.T) {
	var c Collection[domain.Article]
	c = c.requested()
	c = c.fetched(domain.Page[domain.Article]{Page: 1, PageSize: 10}, 1, time.Now())
	if c.Items == nil {
		t.Fatalf("Items must never be nil after a successful fetch")
	}
}
