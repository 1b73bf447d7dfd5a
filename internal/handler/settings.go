// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/resource"
)

// SettingsHandler edits site-wide content blocks (terms, privacy, about,
// contact). Blocks are keyed by type, not numeric ID.
type SettingsHandler struct {
	base
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(d Deps) *SettingsHandler {
	return &SettingsHandler{base: newBase(d)}
}

// knownSettingTypes guards the {type} URL parameter.
var knownSettingTypes = map[string]bool{
	model.SettingTypeTerms:   true,
	model.SettingTypePrivacy: true,
	model.SettingTypeAbout:   true,
	model.SettingTypeContact: true,
}

// List renders the settings overview. GET /admin/settings
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	result, apiErr := h.services.Settings.List(r.Context(), listQuery(r))
	if redirectIfAuthExpired(w, r, h.renderer, apiErr) {
		return
	}

	data := h.pageData(r, "Site settings")
	if apiErr != nil {
		h.logger.Error("settings list failed", "error", apiErr.Message)
		data.Flash = "Could not load settings"
		data.FlashType = "error"
	}
	data.Data = result.Items
	if err := h.renderer.Render(w, r, "admin/settings_list", data); err != nil {
		logAndInternalError(w, "render settings list", "error", err)
	}
}

// EditForm renders the editor for one block. GET /admin/settings/{type}
func (h *SettingsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	settingType := chi.URLParam(r, "type")
	if !knownSettingTypes[settingType] {
		flashError(w, r, h.renderer, redirectAdminSettings, "Unknown setting type")
		return
	}

	setting, apiErr := h.services.Settings.Get(r.Context(), settingType)
	if redirectIfAuthExpired(w, r, h.renderer, apiErr) {
		return
	}
	if apiErr != nil && apiErr.Kind != apiclient.KindNotFound {
		flashError(w, r, h.renderer, redirectAdminSettings, "Error loading setting")
		return
	}
	// A block that does not exist yet is rendered as an empty editor.
	if apiErr != nil {
		setting = model.Setting{Type: settingType}
	}

	data := h.pageData(r, "Edit "+settingType)
	data.Data = setting
	if err := h.renderer.Render(w, r, "admin/settings_form", data); err != nil {
		logAndInternalError(w, "render settings form", "error", err)
	}
}

// Update saves one block, creating it on first save. POST /admin/settings/{type}
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	settingType := chi.URLParam(r, "type")
	if !knownSettingTypes[settingType] {
		flashError(w, r, h.renderer, redirectAdminSettings, "Unknown setting type")
		return
	}
	returnTo := redirectAdminSettings + "/" + settingType
	if !parseFormOrRedirect(w, r, h.renderer, returnTo) {
		return
	}

	in := resource.SettingInput{
		Type:    settingType,
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: r.FormValue("content"),
	}
	if in.Title == "" {
		flashError(w, r, h.renderer, returnTo, "Title is required")
		return
	}

	resp := h.services.Settings.Update(r.Context(), settingType, in)
	if resp.Err != nil && resp.Err.Kind == apiclient.KindNotFound {
		resp = h.services.Settings.Create(r.Context(), in)
	}
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, returnTo, failMessage(resp, "Could not save setting"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "setting", 0, "update:"+settingType, "")
	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Setting saved")
}
