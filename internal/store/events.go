// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Event categories.
const (
	EventCategoryAuth       = "auth"
	EventCategoryModeration = "moderation"
	EventCategorySystem     = "system"
)

// Event is one audit trail entry.
type Event struct {
	ID          int64
	CreatedAt   string
	Level       string
	Category    string
	Message     string
	ActorEmail  string
	Resource    string
	ResourceID  int64
	RequestPath string
	Metadata    map[string]any
}

// Events provides audit trail access.
type Events struct {
	db *sql.DB
}

// NewEvents wraps the database for audit writes and reads.
func NewEvents(db *sql.DB) *Events {
	return &Events{db: db}
}

// Insert records one event. Metadata is stored as JSON.
func (e *Events) Insert(ctx context.Context, ev Event) error {
	meta := "{}"
	if len(ev.Metadata) > 0 {
		raw, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("encoding event metadata: %w", err)
		}
		meta = string(raw)
	}

	_, err := e.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, actor_email, resource, resource_id, request_path, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Level, ev.Category, ev.Message, ev.ActorEmail, ev.Resource, ev.ResourceID, ev.RequestPath, meta,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first.
func (e *Events) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := e.db.QueryContext(ctx, `
		SELECT id, created_at, level, category, message, actor_email, resource, resource_id, request_path, metadata
		FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var ev Event
		var meta string
		if err := rows.Scan(&ev.ID, &ev.CreatedAt, &ev.Level, &ev.Category, &ev.Message,
			&ev.ActorEmail, &ev.Resource, &ev.ResourceID, &ev.RequestPath, &meta); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if meta != "" && meta != "{}" {
			_ = json.Unmarshal([]byte(meta), &ev.Metadata)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Purge deletes events older than the given number of days.
func (e *Events) Purge(ctx context.Context, olderThanDays int) (int64, error) {
	res, err := e.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < datetime('now', ?)`,
		fmt.Sprintf("-%d days", olderThanDays))
	if err != nil {
		return 0, fmt.Errorf("purging events: %w", err)
	}
	return res.RowsAffected()
}
