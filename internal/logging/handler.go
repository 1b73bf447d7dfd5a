// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that tees WARN and above, plus
// explicit audit records, into the local events table.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/venuedesk/admin-go/internal/store"
)

// EventLogHandler wraps another handler and also writes records at or above
// its threshold to the audit trail.
type EventLogHandler struct {
	inner  slog.Handler
	events *store.Events
	level  slog.Level
	attrs  []slog.Attr
}

// NewEventLogHandler tees WARN and above into the events table.
func NewEventLogHandler(inner slog.Handler, events *store.Events) *EventLogHandler {
	return &EventLogHandler{inner: inner, events: events, level: slog.LevelWarn}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), events: h.events, level: h.level, attrs: merged}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), events: h.events, level: h.level, attrs: h.attrs}
}

// writeEvent stores the record in the audit trail. A background context is
// used so a cancelled request cannot lose the entry.
func (h *EventLogHandler) writeEvent(r slog.Record) {
	ev := store.Event{
		Level:    levelName(r.Level),
		Category: store.EventCategorySystem,
		Message:  r.Message,
		Metadata: map[string]any{},
	}

	collect := func(a slog.Attr) {
		switch a.Key {
		case "category":
			ev.Category = a.Value.String()
		case "actor":
			ev.ActorEmail = a.Value.String()
		case "resource":
			ev.Resource = a.Value.String()
		case "resource_id":
			ev.ResourceID = a.Value.Int64()
		case "path":
			ev.RequestPath = a.Value.String()
		default:
			ev.Metadata[a.Key] = a.Value.Any()
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	if ev.Category == store.EventCategorySystem {
		ev.Category = inferCategory(r.Message)
	}

	_ = h.events.Insert(context.Background(), ev)
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}

func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "auth"):
		return store.EventCategoryAuth
	case strings.Contains(msg, "approve") || strings.Contains(msg, "reject") || strings.Contains(msg, "block"):
		return store.EventCategoryModeration
	default:
		return store.EventCategorySystem
	}
}

// Audit records a moderation action regardless of log level.
func Audit(events *store.Events, actor, resource string, resourceID int64, verb, reason string) {
	if events == nil {
		return
	}
	meta := map[string]any{"verb": verb}
	if reason != "" {
		meta["reason"] = reason
	}
	_ = events.Insert(context.Background(), store.Event{
		Level:      "info",
		Category:   store.EventCategoryModeration,
		Message:    verb + " " + resource,
		ActorEmail: actor,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   meta,
	})
}
