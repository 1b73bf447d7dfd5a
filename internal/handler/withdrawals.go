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

// WithdrawalsHandler reviews venue payout requests. Approve, reject and
// mark-processing are distinct verbs with distinct backend endpoints; nothing
// here guesses the verb from the current status.
type WithdrawalsHandler struct {
	base
	screen *listScreen[model.Withdrawal]
}

// NewWithdrawalsHandler creates a new WithdrawalsHandler.
func NewWithdrawalsHandler(d Deps) *WithdrawalsHandler {
	b := newBase(d)
	fetch := func(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Withdrawal], *apiclient.APIError) {
		if q.Filters["scope"] == "pending" {
			return b.services.Withdrawals.Pending(ctx, q.WithoutFilter("scope"))
		}
		return b.services.Withdrawals.List(ctx, q)
	}
	return &WithdrawalsHandler{
		base:   b,
		screen: newListScreen(fetch, model.Withdrawal.SearchFields, d.Cache, "withdrawals:list"),
	}
}

// List renders the withdrawals table. GET /admin/withdrawals
func (h *WithdrawalsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "scope", "status")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Withdrawals")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminWithdrawals)
	if err := h.renderer.Render(w, r, "admin/withdrawals_list", data); err != nil {
		logAndInternalError(w, "render withdrawals list", "error", err)
	}
}

// Detail renders one withdrawal. GET /admin/withdrawals/{id}
func (h *WithdrawalsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminWithdrawals, "Invalid withdrawal ID")
		return
	}

	wd, ok := requireRemote(w, r, h.renderer, redirectAdminWithdrawals, "Withdrawal", func() (model.Withdrawal, *apiclient.APIError) {
		return h.services.Withdrawals.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, "Withdrawal")
	data.Data = struct {
		Withdrawal model.Withdrawal
		Detail     model.WithdrawalDetail
	}{wd, wd.Project()}
	if err := h.renderer.Render(w, r, "admin/withdrawals_detail", data); err != nil {
		logAndInternalError(w, "render withdrawal detail", "error", err)
	}
}

// Approve approves a payout. POST /admin/withdrawals/{id}/approve
func (h *WithdrawalsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "approve")
}

// Reject rejects a payout with a reason. POST /admin/withdrawals/{id}/reject
func (h *WithdrawalsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "reject")
}

// MarkProcessing marks a payout as being processed. POST /admin/withdrawals/{id}/processing
func (h *WithdrawalsHandler) MarkProcessing(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "processing")
}

func (h *WithdrawalsHandler) act(w http.ResponseWriter, r *http.Request, verb string) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminWithdrawals, "Invalid withdrawal ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminWithdrawals) {
		return
	}
	reason := r.FormValue("reason")
	notes := r.FormValue("notes")
	returnTo := fmt.Sprintf(redirectAdminWithdrawalsID, id)

	ok, errMsg := runConfirmed(r.Context(),
		confirm.Action{Verb: verb, Resource: "withdrawal", TargetID: id},
		reason,
		func(ctx context.Context, reason string) *apiclient.Response {
			switch verb {
			case "approve":
				return h.services.Withdrawals.Approve(ctx, id, notes)
			case "reject":
				return h.services.Withdrawals.Reject(ctx, id, reason, notes)
			default:
				return h.services.Withdrawals.MarkProcessing(ctx, id, notes)
			}
		},
	)
	if !ok {
		flashError(w, r, h.renderer, returnTo, errMsg)
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "withdrawal", id, verb, reason)
	h.screen.refresh(r)

	msg := "Withdrawal " + pastTense(verb)
	if verb == "processing" {
		msg = "Withdrawal marked as processing"
	}
	flashSuccess(w, r, h.renderer, redirectAdminWithdrawals, msg)
}
