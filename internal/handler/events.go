// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
)

// EventsHandler shows the local audit trail.
type EventsHandler struct {
	base
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(d Deps) *EventsHandler {
	return &EventsHandler{base: newBase(d)}
}

// List renders recent audit events. GET /admin/events
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.Recent(r.Context(), 100)
	if err != nil {
		logAndInternalError(w, "loading events", "error", err)
		return
	}

	data := h.pageData(r, "Audit trail")
	data.Data = events
	if err := h.renderer.Render(w, r, "admin/events", data); err != nil {
		logAndInternalError(w, "render events", "error", err)
	}
}
