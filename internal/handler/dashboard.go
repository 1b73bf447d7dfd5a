// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/resource"
	"github.com/venuedesk/admin-go/internal/store"
)

// DashboardHandler renders the landing page: moderation statistics plus the
// recent local audit trail.
type DashboardHandler struct {
	base
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(d Deps) *DashboardHandler {
	return &DashboardHandler{base: newBase(d)}
}

// dashboardData is the template payload for the landing page.
type dashboardData struct {
	BannerStats        resource.BannerStats
	PendingWithdrawals int
	OpenTickets        int
	RecentEvents       []store.Event
	BackendDown        bool
}

// Show renders the dashboard. GET /admin
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	var dd dashboardData

	// The banner list response carries the moderation statistics block.
	q := listing.NewQuery(1)
	if _, apiErr := h.services.Banners.List(r.Context(), q); apiErr != nil {
		if redirectIfAuthExpired(w, r, h.renderer, apiErr) {
			return
		}
		dd.BackendDown = true
	}
	dd.BannerStats = h.services.Banners.Stats()

	if !dd.BackendDown {
		pending := listing.NewQuery(1)
		if result, apiErr := h.services.Withdrawals.Pending(r.Context(), pending); apiErr == nil {
			dd.PendingWithdrawals = result.TotalCount
		}
		open := listing.NewQuery(1)
		open.Filters["status"] = "open"
		if result, apiErr := h.services.Tickets.List(r.Context(), open); apiErr == nil {
			dd.OpenTickets = result.TotalCount
		}
	}

	events, err := h.events.Recent(r.Context(), 10)
	if err != nil {
		h.logger.Error("loading recent events", "error", err)
	}
	dd.RecentEvents = events

	data := h.pageData(r, "Dashboard")
	data.Degraded = dd.BackendDown
	data.Data = dd
	if err := h.renderer.Render(w, r, "admin/dashboard", data); err != nil {
		logAndInternalError(w, "render dashboard", "error", err)
	}
}
