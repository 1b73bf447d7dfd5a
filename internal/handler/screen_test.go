// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
)

// Two operators hitting the same screen at once must each get their own
// query and items. One slow fetch is held open while a second request runs
// start to finish; neither result may leak into the other.
func TestListScreenIsolatesConcurrentRequests(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context, q listing.Query) (apiclient.ListResult[string], *apiclient.APIError) {
		if q.Search == "slow" {
			close(entered)
			<-release
		}
		return apiclient.ListResult[string]{
			Items:      []string{"result-for-" + q.Search},
			TotalCount: 1,
		}, nil
	}
	fields := func(item string) []string { return []string{item} }
	screen := newListScreen(fetch, fields, nil, "")

	slowDone := make(chan listing.State[string], 1)
	go func() {
		r := httptest.NewRequest("GET", "/admin/banners?search=slow", nil)
		slowDone <- screen.load(r)
	}()
	<-entered

	fastState := screen.load(httptest.NewRequest("GET", "/admin/banners?search=fast", nil))
	close(release)
	slowState := <-slowDone

	if fastState.Query.Search != "fast" {
		t.Errorf("fast request query = %q", fastState.Query.Search)
	}
	if len(fastState.Items) != 1 || fastState.Items[0] != "result-for-fast" {
		t.Errorf("fast request items = %v", fastState.Items)
	}
	if slowState.Query.Search != "slow" {
		t.Errorf("slow request query = %q", slowState.Query.Search)
	}
	if len(slowState.Items) != 1 || slowState.Items[0] != "result-for-slow" {
		t.Errorf("slow request items = %v", slowState.Items)
	}
}
