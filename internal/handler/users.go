// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/confirm"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/resource"
)

// UsersHandler manages marketplace accounts: block, unblock, verify,
// unverify and delete.
type UsersHandler struct {
	base
	screen *listScreen[model.ManagedUser]
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(d Deps) *UsersHandler {
	b := newBase(d)
	return &UsersHandler{
		base:   b,
		screen: newListScreen(b.services.Users.List, model.ManagedUser.SearchFields, d.Cache, "users:list"),
	}
}

// List renders the users table. GET /admin/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "status", "role")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Users")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminUsers)
	if err := h.renderer.Render(w, r, "admin/users_list", data); err != nil {
		logAndInternalError(w, "render users list", "error", err)
	}
}

// Detail renders one account. GET /admin/users/{id}
func (h *UsersHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid user ID")
		return
	}

	user, ok := requireRemote(w, r, h.renderer, redirectAdminUsers, "User", func() (model.ManagedUser, *apiclient.APIError) {
		return h.services.Users.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, user.Name)
	data.Data = struct {
		User   model.ManagedUser
		Detail model.ManagedUserDetail
	}{user, user.Project()}
	if err := h.renderer.Render(w, r, "admin/users_detail", data); err != nil {
		logAndInternalError(w, "render user detail", "error", err)
	}
}

// Action applies a moderation verb to an account.
// POST /admin/users/{id}/action with form fields "verb" and "reason".
func (h *UsersHandler) Action(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid user ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}

	verb := r.FormValue("verb")
	reason := r.FormValue("reason")
	returnTo := fmt.Sprintf(redirectAdminUsersID, id)

	switch verb {
	case resource.UserActionBlock, resource.UserActionUnblock,
		resource.UserActionVerify, resource.UserActionUnverify,
		resource.UserActionDelete:
	default:
		flashError(w, r, h.renderer, returnTo, "Unknown action")
		return
	}

	ok, errMsg := runConfirmed(r.Context(),
		confirm.Action{Verb: verb, Resource: "user", TargetID: id},
		reason,
		func(ctx context.Context, reason string) *apiclient.Response {
			return h.services.Users.Action(ctx, id, verb, reason)
		},
	)
	if !ok {
		flashError(w, r, h.renderer, returnTo, errMsg)
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "user", id, verb, reason)
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User "+pastTense(verb))
}
