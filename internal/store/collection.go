package store

import (
	"time"

	"github.com/tbourn/go-news-client/internal/domain"
)

// Collection is the cached state of one remote collection: the fetched items,
// the optionally selected single entity, load/error status, the pagination
// cursor, the time of the last successful full fetch, and the request
// generation used to discard stale responses.
//
// Collections are value types; every transition returns a new value and never
// mutates Items in place. Transitions that change Items allocate a fresh
// slice so older snapshots stay valid.
type Collection[T any] struct {
	Items       []T
	Current     *T
	Loading     bool
	Error       string
	Pagination  domain.Pagination
	LastFetched time.Time // zero until the first successful full fetch
	Generation  uint64
}

// requested begins a full-collection fetch: loading on, error cleared, and
// the generation bumped so responses to older requests become stale.
func (c Collection[T]) requested() Collection[T] {
	c.Loading = true
	c.Error = ""
	c.Generation++
	return c
}

// currentRequested begins a single-entity fetch. Current is cleared so the
// UI never shows the previous entity while a different one loads.
func (c Collection[T]) currentRequested() Collection[T] {
	c = c.requested()
	c.Current = nil
	return c
}

// busy begins a mutation (create/update/delete) without touching the
// generation: mutations cannot go stale, they apply in dispatch order.
func (c Collection[T]) busy() Collection[T] {
	c.Loading = true
	c.Error = ""
	return c
}

// fetched installs a full page. A stale generation leaves the state
// untouched. LastFetched is only ever set here: a full, successful fetch is
// the one event that makes the cache fresh.
func (c Collection[T]) fetched(page domain.Page[T], gen uint64, now time.Time) Collection[T] {
	if gen != c.Generation {
		return c
	}
	c.Items = page.Data
	if c.Items == nil {
		c.Items = []T{}
	}
	c.Loading = false
	c.Error = ""
	c.LastFetched = now
	c.Pagination = domain.Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	return c
}

// currentFetched installs a single entity as Current. Stale generations are
// discarded. LastFetched is not touched: fetching one entity says nothing
// about the freshness of the whole collection.
func (c Collection[T]) currentFetched(item T, gen uint64) Collection[T] {
	if gen != c.Generation {
		return c
	}
	c.Current = &item
	c.Loading = false
	c.Error = ""
	return c
}

// fetchFailed records a failed fetch. Items survive so stale-but-usable data
// stays visible behind the error.
func (c Collection[T]) fetchFailed(msg string, gen uint64) Collection[T] {
	if gen != c.Generation {
		return c
	}
	return c.failed(msg)
}

// failed records a failed mutation. Items survive.
func (c Collection[T]) failed(msg string) Collection[T] {
	c.Loading = false
	c.Error = msg
	return c
}

// created prepends item and selects it as Current.
func (c Collection[T]) created(item T) Collection[T] {
	items := make([]T, 0, len(c.Items)+1)
	items = append(items, item)
	items = append(items, c.Items...)
	c.Items = items
	c.Current = &item
	c.Loading = false
	c.Error = ""
	return c
}

// updated replaces the entity whose idOf matches item's identity, and makes
// item Current. An unmatched identity leaves Items as they were.
func (c Collection[T]) updated(item T, id uint, idOf func(T) uint) Collection[T] {
	items := make([]T, len(c.Items))
	for i, it := range c.Items {
		if idOf(it) == id {
			items[i] = item
		} else {
			items[i] = it
		}
	}
	c.Items = items
	c.Current = &item
	c.Loading = false
	c.Error = ""
	return c
}

// removed filters out the entity with the given identity. Removing an absent
// ID is a no-op on Items. Current is cleared when it was the removed entity.
func (c Collection[T]) removed(id uint, idOf func(T) uint) Collection[T] {
	items := make([]T, 0, len(c.Items))
	for _, it := range c.Items {
		if idOf(it) != id {
			items = append(items, it)
		}
	}
	c.Items = items
	if c.Current != nil && idOf(*c.Current) == id {
		c.Current = nil
	}
	c.Loading = false
	c.Error = ""
	return c
}

// ShouldFetch is the staleness policy: it reports whether the cached
// collection needs a network refetch. Pure function of the slice and the
// supplied clock reading; evaluated in order:
//
//  1. never fetched → true
//  2. last fetch older than ttl → true
//  3. no items and a recorded error (failed fetch left nothing usable) → true
//  4. otherwise the cache is fresh and usable → false
//
// A successful fetch that legitimately returned zero items is NOT retried
// until the validity window expires: empty-but-valid is distinct from
// empty-due-to-failure.
func (c Collection[T]) ShouldFetch(now time.Time, ttl time.Duration) bool {
	if c.LastFetched.IsZero() {
		return true
	}
	if now.Sub(c.LastFetched) > ttl {
		return true
	}
	if len(c.Items) == 0 && c.Error != "" {
		return true
	}
	return false
}
