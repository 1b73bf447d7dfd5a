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
)

// PromotionsHandler moderates venue promotion campaigns.
type PromotionsHandler struct {
	base
	screen *listScreen[model.Promotion]
}

// NewPromotionsHandler creates a new PromotionsHandler.
func NewPromotionsHandler(d Deps) *PromotionsHandler {
	b := newBase(d)
	fetch := func(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Promotion], *apiclient.APIError) {
		if q.Filters["scope"] == "pending" {
			return b.services.Promotions.Pending(ctx, q.WithoutFilter("scope"))
		}
		return b.services.Promotions.List(ctx, q)
	}
	return &PromotionsHandler{
		base:   b,
		screen: newListScreen(fetch, model.Promotion.SearchFields, d.Cache, "promotions:list"),
	}
}

// List renders the promotions table. GET /admin/promotions
func (h *PromotionsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "scope", "status")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Promotions")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminPromotions)
	if err := h.renderer.Render(w, r, "admin/promotions_list", data); err != nil {
		logAndInternalError(w, "render promotions list", "error", err)
	}
}

// Detail renders one promotion. GET /admin/promotions/{id}
func (h *PromotionsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminPromotions, "Invalid promotion ID")
		return
	}

	promo, ok := requireRemote(w, r, h.renderer, redirectAdminPromotions, "Promotion", func() (model.Promotion, *apiclient.APIError) {
		return h.services.Promotions.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, promo.Title)
	data.Data = struct {
		Promotion model.Promotion
		Detail    model.PromotionDetail
	}{promo, promo.Project()}
	if err := h.renderer.Render(w, r, "admin/promotions_detail", data); err != nil {
		logAndInternalError(w, "render promotion detail", "error", err)
	}
}

// Approve approves a pending promotion. POST /admin/promotions/{id}/approve
func (h *PromotionsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "approve")
}

// Reject rejects a pending promotion with a reason. POST /admin/promotions/{id}/reject
func (h *PromotionsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "reject")
}

func (h *PromotionsHandler) moderate(w http.ResponseWriter, r *http.Request, verb string) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminPromotions, "Invalid promotion ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminPromotions) {
		return
	}
	reason := r.FormValue("reason")
	returnTo := fmt.Sprintf(redirectAdminPromotionsID, id)

	ok, errMsg := runConfirmed(r.Context(),
		confirm.Action{Verb: verb, Resource: "promotion", TargetID: id},
		reason,
		func(ctx context.Context, reason string) *apiclient.Response {
			if verb == "approve" {
				return h.services.Promotions.Approve(ctx, id)
			}
			return h.services.Promotions.Reject(ctx, id, reason)
		},
	)
	if !ok {
		flashError(w, r, h.renderer, returnTo, errMsg)
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "promotion", id, verb, reason)
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminPromotions, "Promotion "+pastTense(verb))
}
