// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/confirm"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/model"
)

// RegistrationsHandler reviews venue and user registration requests.
type RegistrationsHandler struct {
	base
	screen *listScreen[model.Registration]
}

// NewRegistrationsHandler creates a new RegistrationsHandler.
func NewRegistrationsHandler(d Deps) *RegistrationsHandler {
	b := newBase(d)
	return &RegistrationsHandler{
		base:   b,
		screen: newListScreen(b.services.Registrations.List, model.Registration.SearchFields, d.Cache, "registrations:list"),
	}
}

// List renders the registrations table. GET /admin/registrations
func (h *RegistrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "status", "type")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Registrations")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminRegistrations)
	if err := h.renderer.Render(w, r, "admin/registrations_list", data); err != nil {
		logAndInternalError(w, "render registrations list", "error", err)
	}
}

// Detail renders one registration. GET /admin/registrations/{id}
func (h *RegistrationsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminRegistrations, "Invalid registration ID")
		return
	}

	reg, ok := requireRemote(w, r, h.renderer, redirectAdminRegistrations, "Registration", func() (model.Registration, *apiclient.APIError) {
		return h.services.Registrations.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, "Registration")
	data.Data = struct {
		Registration model.Registration
		Detail       model.RegistrationDetail
	}{reg, reg.Project()}
	if err := h.renderer.Render(w, r, "admin/registrations_detail", data); err != nil {
		logAndInternalError(w, "render registration detail", "error", err)
	}
}

// Approve approves a registration. POST /admin/registrations/{id}/approve
func (h *RegistrationsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "approve")
}

// Reject rejects a registration with a reason. POST /admin/registrations/{id}/reject
func (h *RegistrationsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "reject")
}

// Delete removes a registration request. POST /admin/registrations/{id}/delete
func (h *RegistrationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminRegistrations, "Invalid registration ID")
		return
	}

	resp := h.services.Registrations.Delete(r.Context(), id)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminRegistrations, failMessage(resp, "Could not delete registration"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "registration", id, "delete", "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminRegistrations, "Registration deleted")
}

func (h *RegistrationsHandler) moderate(w http.ResponseWriter, r *http.Request, verb string) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminRegistrations, "Invalid registration ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminRegistrations) {
		return
	}
	reason := r.FormValue("reason")

	ok, errMsg := runConfirmed(r.Context(),
		confirm.Action{Verb: verb, Resource: "registration", TargetID: id},
		reason,
		func(ctx context.Context, reason string) *apiclient.Response {
			if verb == "approve" {
				return h.services.Registrations.Approve(ctx, id)
			}
			return h.services.Registrations.Reject(ctx, id, reason)
		},
	)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminRegistrations, errMsg)
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "registration", id, verb, reason)
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminRegistrations, "Registration "+pastTense(verb))
}
