// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listing implements the shared contract behind every admin list
// screen: fetch with filters, debounced search, pagination, single-item
// mutation with refresh, and a degraded fallback serving the last good
// snapshot when the backend is unreachable.
package listing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/cache"
)

// Fetcher loads one page of records for the given query.
type Fetcher[T any] func(ctx context.Context, q Query) (apiclient.ListResult[T], *apiclient.APIError)

// SearchFields extracts the free-text fields used for local narrowing while a
// debounced server fetch is pending, and for filtering the degraded snapshot.
type SearchFields[T any] func(item T) []string

// State is a point-in-time copy of controller state for rendering.
type State[T any] struct {
	Query      Query
	Items      []T
	TotalCount int
	TotalPages int
	Loading    bool
	Degraded   bool
	Err        *apiclient.APIError
}

// Mutation describes a single-item action and how the list reacts to it
// succeeding. With RemovesFromView set (or no Patch given) the controller
// refetches, because the active filter would now exclude the item; otherwise
// the matching item is patched in place.
type Mutation[T any] struct {
	Do              func(ctx context.Context) *apiclient.APIError
	Match           func(item T) bool
	Patch           func(item *T)
	RemovesFromView bool
}

// Controller is the generic state machine behind an admin list screen. Every
// table (banners, promotions, registrations, withdrawals, tickets, users) is
// an instantiation against a different fetcher and record type.
type Controller[T any] struct {
	fetch       Fetcher[T]
	fields      SearchFields[T]
	snapshot    *cache.Typed[[]T]
	snapshotKey string
	debounce    time.Duration

	mu      sync.Mutex
	seq     uint64 // latest issued fetch; stale results are discarded
	timer   *time.Timer
	stopped bool

	query    Query
	fetched  []T // last authoritative page from the server
	items    []T // visible items (fetched, locally narrowed, or snapshot slice)
	total    int
	loading  bool
	degraded bool
	lastErr  *apiclient.APIError
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithSnapshot enables degraded-mode fallback backed by the given cache.
func WithSnapshot[T any](snap *cache.Typed[[]T], key string) Option[T] {
	return func(c *Controller[T]) {
		c.snapshot = snap
		c.snapshotKey = key
	}
}

// WithDebounce overrides the search debounce interval.
func WithDebounce[T any](d time.Duration) Option[T] {
	return func(c *Controller[T]) { c.debounce = d }
}

// WithPageSize overrides the page size.
func WithPageSize[T any](size int) Option[T] {
	return func(c *Controller[T]) { c.query.PageSize = size }
}

// New creates a controller. fields may be nil when the resource has no
// free-text search columns; local narrowing and snapshot filtering are then
// disabled and only server-side search applies.
func New[T any](fetch Fetcher[T], fields SearchFields[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		fetch:    fetch,
		fields:   fields,
		debounce: 300 * time.Millisecond,
		query:    NewQuery(DefaultPageSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current controller state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return State[T]{
		Query:      c.query.clone(),
		Items:      items,
		TotalCount: c.total,
		TotalPages: totalPages(c.total, c.query.PageSize),
		Loading:    c.loading,
		Degraded:   c.degraded,
		Err:        c.lastErr,
	}
}

// SetQuery replaces the whole query (used when a screen restores state from
// the URL) and fetches synchronously.
func (c *Controller[T]) SetQuery(ctx context.Context, q Query) {
	c.mu.Lock()
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = c.query.PageSize
	}
	c.query = q
	c.mu.Unlock()
	c.Fetch(ctx)
}

// SetSearch narrows the visible items immediately for perceived
// responsiveness and schedules a debounced authoritative fetch. The server
// result replaces the local guess once it arrives.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) {
	c.mu.Lock()
	c.query.Search = term
	c.query.Page = 1
	c.items = c.narrowLocked(c.fetched, term)
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.Fetch(ctx) })
	c.mu.Unlock()
}

// SetFilter sets one filter, resets the page to 1, and refetches.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) {
	c.mu.Lock()
	if value == "" {
		delete(c.query.Filters, key)
	} else {
		c.query.Filters[key] = value
	}
	c.query.Page = 1
	c.mu.Unlock()
	c.Fetch(ctx)
}

// ClearFilters drops all filters, resets the page to 1, and refetches.
func (c *Controller[T]) ClearFilters(ctx context.Context) {
	c.mu.Lock()
	c.query.Filters = make(map[string]string)
	c.query.Page = 1
	c.mu.Unlock()
	c.Fetch(ctx)
}

// SetPage moves to page n and refetches. Out-of-range requests are no-ops.
func (c *Controller[T]) SetPage(ctx context.Context, n int) {
	c.mu.Lock()
	if n < 1 || n > totalPages(c.total, c.query.PageSize) || n == c.query.Page {
		c.mu.Unlock()
		return
	}
	c.query.Page = n
	c.mu.Unlock()
	c.Fetch(ctx)
}

// Fetch issues the list call for the current query. Only the most recently
// issued fetch is authoritative: a result arriving for a superseded query is
// discarded.
func (c *Controller[T]) Fetch(ctx context.Context) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	q := c.query.clone()
	c.loading = true
	c.mu.Unlock()

	result, apiErr := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || c.stopped {
		return // superseded by a newer fetch
	}
	c.loading = false

	if apiErr != nil {
		c.lastErr = apiErr
		if snap, ok := c.snapshotGet(ctx); ok {
			// Serve a locally filtered slice of the last good result so the
			// screen stays usable. Staleness is surfaced via Degraded.
			c.degraded = true
			c.fetched = snap
			c.items = c.narrowLocked(snap, q.Search)
			c.total = len(c.items)
			return
		}
		c.degraded = false
		c.fetched = nil
		c.items = nil
		c.total = 0
		return
	}

	c.lastErr = nil
	c.degraded = false
	c.fetched = result.Items
	c.items = result.Items
	c.total = result.TotalCount
	c.snapshotSet(ctx, result.Items)
}

// Mutate runs a single-item action. On success the item is patched in place
// or the list is refetched, per the mutation's policy; on failure the items
// are left untouched and the error is surfaced. A mutation is never partially
// applied.
func (c *Controller[T]) Mutate(ctx context.Context, m Mutation[T]) *apiclient.APIError {
	if apiErr := m.Do(ctx); apiErr != nil {
		c.mu.Lock()
		c.lastErr = apiErr
		c.mu.Unlock()
		return apiErr
	}

	if m.RemovesFromView || m.Patch == nil || m.Match == nil {
		c.Fetch(ctx)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
	for i := range c.fetched {
		if m.Match(c.fetched[i]) {
			m.Patch(&c.fetched[i])
			break
		}
	}
	for i := range c.items {
		if m.Match(c.items[i]) {
			m.Patch(&c.items[i])
			break
		}
	}
	return nil
}

// Stop cancels any pending debounced fetch and marks in-flight results as
// stale. Call when the owning screen goes away.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
	}
}

// narrowLocked filters items by the search term over the declared free-text
// fields. Purely cosmetic: the debounced server fetch supersedes it.
func (c *Controller[T]) narrowLocked(items []T, term string) []T {
	if term == "" || c.fields == nil {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	var out []T
	for _, item := range items {
		for _, field := range c.fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func (c *Controller[T]) snapshotGet(ctx context.Context) ([]T, bool) {
	if c.snapshot == nil {
		return nil, false
	}
	return c.snapshot.Get(ctx, c.snapshotKey)
}

func (c *Controller[T]) snapshotSet(ctx context.Context, items []T) {
	if c.snapshot == nil {
		return
	}
	_ = c.snapshot.Set(ctx, c.snapshotKey, items)
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
