// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/cache"
	"github.com/venuedesk/admin-go/internal/resource"
	"github.com/venuedesk/admin-go/internal/session"
)

type stubSource struct {
	count int
	err   *apiclient.APIError
	calls int
}

func (s *stubSource) UnreadCount(ctx context.Context) (int, *apiclient.APIError) {
	s.calls++
	return s.count, s.err
}

func newTestPoller(src *stubSource) *Poller {
	mem := cache.NewMemoryCache(cache.MemoryOptions{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(src, mem, "*/2 * * * *", logger)
}

func TestRefreshStoresSnapshot(t *testing.T) {
	src := &stubSource{count: 5}
	p := newTestPoller(src)

	p.refresh(context.Background())

	snap, ok := p.Unread(context.Background())
	if !ok {
		t.Fatal("expected snapshot after refresh")
	}
	if snap.Count != 5 {
		t.Errorf("Count = %d", snap.Count)
	}
	if snap.FetchedAt == "" {
		t.Error("FetchedAt empty")
	}
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	src := &stubSource{count: 5}
	p := newTestPoller(src)

	p.refresh(context.Background())
	src.err = &apiclient.APIError{Kind: apiclient.KindNetwork, Message: "down"}
	src.count = 99
	p.refresh(context.Background())

	snap, ok := p.Unread(context.Background())
	if !ok {
		t.Fatal("snapshot lost after failed refresh")
	}
	if snap.Count != 5 {
		t.Errorf("Count = %d, want previous 5", snap.Count)
	}
}

func TestUnreadWithoutSnapshot(t *testing.T) {
	p := newTestPoller(&stubSource{})
	if _, ok := p.Unread(context.Background()); ok {
		t.Error("expected no snapshot before first refresh")
	}
}

func TestStartWithoutRequestSession(t *testing.T) {
	// The poller starts from main with a background context, before any
	// request has carried session data. The token source, the 401 hook and
	// the immediate refresh all run over that context and must come back
	// clean with the badge simply unset.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "authentication required"}`))
	}))
	defer srv.Close()

	sessions := session.NewStore(scs.New())
	api := apiclient.New(srv.URL, apiclient.TokenFunc(sessions.Token),
		apiclient.WithAuthExpiredHook(func(ctx context.Context) { _ = sessions.Clear(ctx) }))
	services := resource.NewServices(api)

	mem := cache.NewMemoryCache(cache.MemoryOptions{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(services.Notifications, mem, "*/2 * * * *", logger)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	p.Stop()

	if _, ok := p.Unread(context.Background()); ok {
		t.Error("expected no snapshot while no one is signed in")
	}
}

func TestStartRunsImmediateRefresh(t *testing.T) {
	src := &stubSource{count: 2}
	p := newTestPoller(src)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop()

	if src.calls == 0 {
		t.Error("Start should refresh immediately")
	}
	if snap, ok := p.Unread(context.Background()); !ok || snap.Count != 2 {
		t.Errorf("snapshot = %+v ok=%v", snap, ok)
	}
}
