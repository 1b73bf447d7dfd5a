// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/model"
)

// NotificationsHandler is the admin inbox.
type NotificationsHandler struct {
	base
	screen *listScreen[model.Notification]
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(d Deps) *NotificationsHandler {
	b := newBase(d)
	return &NotificationsHandler{
		base:   b,
		screen: newListScreen(b.services.Notifications.List, model.Notification.SearchFields, d.Cache, "notifications:list"),
	}
}

// List renders the inbox. GET /admin/notifications
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "is_read")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Notifications")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminNotifications)
	if err := h.renderer.Render(w, r, "admin/notifications_list", data); err != nil {
		logAndInternalError(w, "render notifications list", "error", err)
	}
}

// MarkRead marks one notification read. POST /admin/notifications/{id}/read
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "read")
}

// MarkUnread marks one notification unread. POST /admin/notifications/{id}/unread
func (h *NotificationsHandler) MarkUnread(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "unread")
}

// Delete removes one notification. POST /admin/notifications/{id}/delete
func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "delete")
}

func (h *NotificationsHandler) act(w http.ResponseWriter, r *http.Request, verb string) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminNotifications, "Invalid notification ID")
		return
	}

	var resp *apiclient.Response
	switch verb {
	case "read":
		resp = h.services.Notifications.MarkRead(r.Context(), id)
	case "unread":
		resp = h.services.Notifications.MarkUnread(r.Context(), id)
	default:
		resp = h.services.Notifications.Delete(r.Context(), id)
	}
	h.finish(w, r, resp, "Notification updated")
}

// MarkAllRead marks every notification read. POST /admin/notifications/read-all
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.services.Notifications.MarkAllRead(r.Context()), "All notifications marked read")
}

// ClearAll empties the inbox. POST /admin/notifications/clear
func (h *NotificationsHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.services.Notifications.ClearAll(r.Context()), "Notifications cleared")
}

func (h *NotificationsHandler) finish(w http.ResponseWriter, r *http.Request, resp *apiclient.Response, success string) {
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminNotifications, failMessage(resp, "Notification update failed"))
		return
	}
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminNotifications, success)
}
