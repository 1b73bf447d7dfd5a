// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/venuedesk/admin-go/internal/cache"
	"github.com/venuedesk/admin-go/internal/listing"
)

// snapshotTTL bounds how stale a degraded-mode list may get before we stop
// serving it.
const snapshotTTL = 30 * time.Minute

// listScreen builds a listing controller per request for one admin table.
// Controller state (query, items) belongs to a single request; two operators
// paging the same screen must never see each other's filters. Only the
// degraded-mode snapshot is shared, through the cache.
type listScreen[T any] struct {
	fetch  listing.Fetcher[T]
	fields listing.SearchFields[T]
	snap   *cache.Typed[[]T]
	key    string
}

func newListScreen[T any](fetch listing.Fetcher[T], fields listing.SearchFields[T], c cache.Cache, snapshotKey string) *listScreen[T] {
	s := &listScreen[T]{fetch: fetch, fields: fields, key: snapshotKey}
	if c != nil {
		s.snap = cache.NewTyped[[]T](c, snapshotTTL)
	}
	return s
}

func (s *listScreen[T]) controller() *listing.Controller[T] {
	opts := []listing.Option[T]{}
	if s.snap != nil {
		opts = append(opts, listing.WithSnapshot(s.snap, s.key))
	}
	return listing.New(s.fetch, s.fields, opts...)
}

// load applies the request's query and returns the resulting state.
func (s *listScreen[T]) load(r *http.Request, filterKeys ...string) listing.State[T] {
	ctrl := s.controller()
	defer ctrl.Stop()
	ctrl.SetQuery(r.Context(), listQuery(r, filterKeys...))
	return ctrl.State()
}

// refresh refetches after a mutation handled outside the controller.
func (s *listScreen[T]) refresh(r *http.Request) {
	ctrl := s.controller()
	defer ctrl.Stop()
	ctrl.Fetch(r.Context())
}

// listPage is the template payload for one admin table.
type listPage[T any] struct {
	State      listing.State[T]
	Pagination Pagination
}

func newListPage[T any](st listing.State[T], baseURL string) listPage[T] {
	return listPage[T]{
		State:      st,
		Pagination: BuildPagination(st.Query, st.TotalCount, baseURL),
	}
}
