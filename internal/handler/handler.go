// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the admin dashboard. All
// domain data lives in the remote marketplace backend; handlers call it
// through the resource services and render the result server-side.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/venuedesk/admin-go/internal/cache"
	"github.com/venuedesk/admin-go/internal/config"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/notify"
	"github.com/venuedesk/admin-go/internal/render"
	"github.com/venuedesk/admin-go/internal/resource"
	"github.com/venuedesk/admin-go/internal/session"
	"github.com/venuedesk/admin-go/internal/store"
)

// Deps bundles the shared dependencies handed to every handler constructor.
type Deps struct {
	Cfg             *config.Config
	Renderer        *render.Renderer
	Sessions        *session.Store
	Services        *resource.Services
	Cache           cache.Cache
	Events          *store.Events
	Poller          *notify.Poller
	LoginProtection *middleware.LoginProtection
	Logger          *slog.Logger
}

// base carries the dependencies common to all admin handlers.
type base struct {
	renderer *render.Renderer
	sessions *session.Store
	services *resource.Services
	events   *store.Events
	poller   *notify.Poller
	logger   *slog.Logger
}

func newBase(d Deps) base {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return base{
		renderer: d.Renderer,
		sessions: d.Sessions,
		services: d.Services,
		events:   d.Events,
		poller:   d.Poller,
		logger:   logger,
	}
}

// pageData builds the layout data every admin page needs: the signed-in admin,
// the notification badge snapshot and the CSRF token.
func (b base) pageData(r *http.Request, title string) render.TemplateData {
	data := render.TemplateData{Title: title}
	data.User = middleware.GetUser(r)
	if b.poller != nil {
		if snap, ok := b.poller.Unread(r.Context()); ok {
			data.UnreadCount = snap.Count
		}
	}
	if b.sessions != nil {
		data.CSRFToken = b.sessions.Manager().Token(r.Context())
	}
	return data
}
