// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/confirm"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/resource"
)

// BannersHandler moderates venue banner creatives.
type BannersHandler struct {
	base
	screen *listScreen[model.Banner]
}

// NewBannersHandler creates a new BannersHandler.
func NewBannersHandler(d Deps) *BannersHandler {
	b := newBase(d)
	fetch := func(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Banner], *apiclient.APIError) {
		if q.Filters["scope"] == "pending" {
			q = q.WithoutFilter("scope")
			return b.services.Banners.Pending(ctx, q)
		}
		return b.services.Banners.List(ctx, q)
	}
	return &BannersHandler{
		base:   b,
		screen: newListScreen(fetch, model.Banner.SearchFields, d.Cache, "banners:list"),
	}
}

// bannersListData is the template payload for the banners table.
type bannersListData struct {
	listPage[model.Banner]
	Stats resource.BannerStats
	Scope string
}

// List renders the banners table. GET /admin/banners
func (h *BannersHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "scope", "status")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Banners")
	data.Degraded = st.Degraded
	data.Data = bannersListData{
		listPage: newListPage(st, redirectAdminBanners),
		Stats:    h.services.Banners.Stats(),
		Scope:    st.Query.Filters["scope"],
	}
	if err := h.renderer.Render(w, r, "admin/banners_list", data); err != nil {
		logAndInternalError(w, "render banners list", "error", err)
	}
}

// Detail renders one banner. GET /admin/banners/{id}
func (h *BannersHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminBanners, "Invalid banner ID")
		return
	}

	banner, ok := requireRemote(w, r, h.renderer, redirectAdminBanners, "Banner", func() (model.Banner, *apiclient.APIError) {
		return h.services.Banners.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, banner.Title)
	data.Data = struct {
		Banner model.Banner
		Detail model.BannerDetail
	}{banner, banner.Project()}
	if err := h.renderer.Render(w, r, "admin/banners_detail", data); err != nil {
		logAndInternalError(w, "render banner detail", "error", err)
	}
}

// Approve approves a pending banner. POST /admin/banners/{id}/approve
func (h *BannersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "approve")
}

// Reject rejects a pending banner with a reason. POST /admin/banners/{id}/reject
func (h *BannersHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "reject")
}

func (h *BannersHandler) moderate(w http.ResponseWriter, r *http.Request, verb string) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminBanners, "Invalid banner ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminBanners) {
		return
	}
	reason := r.FormValue("reason")
	returnTo := fmt.Sprintf(redirectAdminBannersID, id)

	ok, errMsg := runConfirmed(r.Context(),
		confirm.Action{Verb: verb, Resource: "banner", TargetID: id},
		reason,
		func(ctx context.Context, reason string) *apiclient.Response {
			if verb == "approve" {
				return h.services.Banners.Approve(ctx, id)
			}
			return h.services.Banners.Reject(ctx, id, reason)
		},
	)
	if !ok {
		flashError(w, r, h.renderer, returnTo, errMsg)
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "banner", id, verb, reason)
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminBanners, "Banner "+pastTense(verb))
}
