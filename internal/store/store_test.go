// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"sessions", "events"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing: %v", table, err)
		}
	}
}

func TestEventsInsertAndRecent(t *testing.T) {
	events := NewEvents(setupTestDB(t))
	ctx := context.Background()

	err := events.Insert(ctx, Event{
		Level:      "info",
		Category:   EventCategoryModeration,
		Message:    "banner approved",
		ActorEmail: "ops@example.com",
		Resource:   "banners",
		ResourceID: 7,
		Metadata:   map[string]any{"verb": "approve"},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err = events.Insert(ctx, Event{
		Level:    "warn",
		Category: EventCategoryAuth,
		Message:  "login failed",
	})
	if err != nil {
		t.Fatalf("Insert second: %v", err)
	}

	recent, err := events.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	// Most recent first
	if recent[0].Message != "login failed" {
		t.Errorf("recent[0].Message = %q", recent[0].Message)
	}
	if recent[1].Resource != "banners" || recent[1].ResourceID != 7 {
		t.Errorf("recent[1] = %+v", recent[1])
	}
	if recent[1].Metadata["verb"] != "approve" {
		t.Errorf("metadata = %v", recent[1].Metadata)
	}
}

func TestEventsPurge(t *testing.T) {
	db := setupTestDB(t)
	events := NewEvents(db)
	ctx := context.Background()

	if err := events.Insert(ctx, Event{Level: "info", Category: EventCategorySystem, Message: "old"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := db.Exec(`UPDATE events SET created_at = datetime('now', '-40 days')`); err != nil {
		t.Fatalf("backdating: %v", err)
	}

	n, err := events.Purge(ctx, 30)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}
}
