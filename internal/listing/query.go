// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"net/url"
	"strconv"
)

// DefaultPageSize is used when a controller is built without an explicit size.
const DefaultPageSize = 10

// Query is the full fetch state of a list screen. Changing Search or Filters
// resets Page to 1 before the next fetch is issued.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
	Sort     string
}

// NewQuery returns a query positioned on the first page.
func NewQuery(pageSize int) Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Query{Page: 1, PageSize: pageSize, Filters: make(map[string]string)}
}

// Values serializes the query for the backend. Empty values are dropped by
// the API client; a non-empty search always targets page 1 because the result
// set changes under it.
func (q Query) Values() url.Values {
	values := url.Values{}
	page := q.Page
	if q.Search != "" {
		page = 1
		values.Set("search", q.Search)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if q.PageSize > 0 && q.PageSize != DefaultPageSize {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	for key, value := range q.Filters {
		values.Set(key, value)
	}
	if q.Sort != "" {
		values.Set("ordering", q.Sort)
	}
	return values
}

// WithoutFilter returns a copy with the given filter key removed. Used when a
// filter key selects a different endpoint rather than a backend parameter.
func (q Query) WithoutFilter(key string) Query {
	copied := q.clone()
	delete(copied.Filters, key)
	return copied
}

// clone returns a deep copy so controller state can be handed out safely.
func (q Query) clone() Query {
	copied := q
	copied.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		copied.Filters[k] = v
	}
	return copied
}
