// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/venuedesk/admin-go/internal/store"
)

func setupEvents(t *testing.T) *store.Events {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return store.NewEvents(db)
}

func newTestLogger(events *store.Events) *slog.Logger {
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, events))
}

func TestWarnIsTeedToEvents(t *testing.T) {
	events := setupEvents(t)
	logger := newTestLogger(events)

	logger.Warn("backend unreachable", "resource", "users", "attempt", 3)

	recent, err := events.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("len(recent) = %d, want 1", len(recent))
	}
	if recent[0].Level != "warning" {
		t.Errorf("level = %q", recent[0].Level)
	}
	if recent[0].Resource != "users" {
		t.Errorf("resource = %q", recent[0].Resource)
	}
	if recent[0].Metadata["attempt"] != float64(3) {
		t.Errorf("metadata = %v", recent[0].Metadata)
	}
}

func TestInfoIsNotTeed(t *testing.T) {
	events := setupEvents(t)
	logger := newTestLogger(events)

	logger.Info("page rendered")

	recent, err := events.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("info record should not reach events, got %d", len(recent))
	}
}

func TestCategoryInference(t *testing.T) {
	events := setupEvents(t)
	logger := newTestLogger(events)

	logger.Error("login failed", "actor", "ops@example.com")

	recent, _ := events.Recent(context.Background(), 5)
	if len(recent) != 1 {
		t.Fatalf("len(recent) = %d", len(recent))
	}
	if recent[0].Category != store.EventCategoryAuth {
		t.Errorf("category = %q, want auth", recent[0].Category)
	}
	if recent[0].ActorEmail != "ops@example.com" {
		t.Errorf("actor = %q", recent[0].ActorEmail)
	}
}

func TestWithAttrsCarriedIntoEvents(t *testing.T) {
	events := setupEvents(t)
	logger := newTestLogger(events).With("category", store.EventCategoryModeration, "resource", "banners")

	logger.Warn("reject failed", "resource_id", int64(7))

	recent, _ := events.Recent(context.Background(), 5)
	if len(recent) != 1 {
		t.Fatalf("len(recent) = %d", len(recent))
	}
	if recent[0].Category != store.EventCategoryModeration {
		t.Errorf("category = %q", recent[0].Category)
	}
	if recent[0].ResourceID != 7 {
		t.Errorf("resource_id = %d", recent[0].ResourceID)
	}
}

func TestAuditHelper(t *testing.T) {
	events := setupEvents(t)

	Audit(events, "ops@example.com", "promotions", 12, "reject", "Low quality image")

	recent, _ := events.Recent(context.Background(), 5)
	if len(recent) != 1 {
		t.Fatalf("len(recent) = %d", len(recent))
	}
	ev := recent[0]
	if ev.Category != store.EventCategoryModeration || ev.ResourceID != 12 {
		t.Errorf("event = %+v", ev)
	}
	if ev.Metadata["reason"] != "Low quality image" {
		t.Errorf("metadata = %v", ev.Metadata)
	}
}
