// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
)

// DesignationsHandler manages staff designation titles.
type DesignationsHandler struct {
	base
}

// NewDesignationsHandler creates a new DesignationsHandler.
func NewDesignationsHandler(d Deps) *DesignationsHandler {
	return &DesignationsHandler{base: newBase(d)}
}

// List renders all designations. GET /admin/designations
func (h *DesignationsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, apiErr := h.services.Designations.List(r.Context())
	if redirectIfAuthExpired(w, r, h.renderer, apiErr) {
		return
	}

	data := h.pageData(r, "Designations")
	if apiErr != nil {
		h.logger.Error("designations list failed", "error", apiErr.Message)
		data.Flash = "Could not load designations"
		data.FlashType = "error"
	}
	data.Data = items
	if err := h.renderer.Render(w, r, "admin/designations_list", data); err != nil {
		logAndInternalError(w, "render designations list", "error", err)
	}
}

// Create adds a designation. POST /admin/designations
func (h *DesignationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminDesignations) {
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, redirectAdminDesignations, "Title is required")
		return
	}

	h.finish(w, r, h.services.Designations.Create(r.Context(), title), "create", 0, "Designation created")
}

// Update renames a designation. POST /admin/designations/{id}
func (h *DesignationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminDesignations, "Invalid designation ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminDesignations) {
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashError(w, r, h.renderer, redirectAdminDesignations, "Title is required")
		return
	}

	h.finish(w, r, h.services.Designations.Update(r.Context(), id, title), "update", id, "Designation updated")
}

// Delete removes a designation. POST /admin/designations/{id}/delete
func (h *DesignationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminDesignations, "Invalid designation ID")
		return
	}

	h.finish(w, r, h.services.Designations.Delete(r.Context(), id), "delete", id, "Designation deleted")
}

func (h *DesignationsHandler) finish(w http.ResponseWriter, r *http.Request, resp *apiclient.Response, verb string, id int64, success string) {
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminDesignations, failMessage(resp, "Designation "+verb+" failed"))
		return
	}
	logging.Audit(h.events, middleware.GetUserEmail(r), "designation", id, verb, "")
	flashSuccess(w, r, h.renderer, redirectAdminDesignations, success)
}
