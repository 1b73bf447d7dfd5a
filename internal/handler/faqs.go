// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/resource"
	"github.com/venuedesk/admin-go/internal/util"
)

// FAQsHandler manages the public help entries. Answers accept markdown; the
// renderer sanitizes on output.
type FAQsHandler struct {
	base
	screen *listScreen[model.FAQ]
}

// NewFAQsHandler creates a new FAQsHandler.
func NewFAQsHandler(d Deps) *FAQsHandler {
	b := newBase(d)
	return &FAQsHandler{
		base:   b,
		screen: newListScreen(b.services.FAQs.List, model.FAQ.SearchFields, d.Cache, "faqs:list"),
	}
}

// List renders the FAQ table. GET /admin/faqs
func (h *FAQsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "is_active")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "FAQs")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminFAQs)
	if err := h.renderer.Render(w, r, "admin/faqs_list", data); err != nil {
		logAndInternalError(w, "render faqs list", "error", err)
	}
}

// NewForm renders the create form. GET /admin/faqs/new
func (h *FAQsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, "New FAQ")
	data.Data = model.FAQ{IsActive: true}
	if err := h.renderer.Render(w, r, "admin/faqs_form", data); err != nil {
		logAndInternalError(w, "render faq form", "error", err)
	}
}

// EditForm renders the edit form. GET /admin/faqs/{id}
func (h *FAQsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminFAQs, "Invalid FAQ ID")
		return
	}

	faq, ok := requireRemote(w, r, h.renderer, redirectAdminFAQs, "FAQ", func() (model.FAQ, *apiclient.APIError) {
		return h.services.FAQs.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, "Edit FAQ")
	data.Data = faq
	if err := h.renderer.Render(w, r, "admin/faqs_form", data); err != nil {
		logAndInternalError(w, "render faq form", "error", err)
	}
}

// Create adds an FAQ entry. POST /admin/faqs
func (h *FAQsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, msg := h.parseInput(w, r, redirectAdminFAQsNew)
	if msg == abortRendered {
		return
	}
	if msg != "" {
		flashError(w, r, h.renderer, redirectAdminFAQsNew, msg)
		return
	}

	resp := h.services.FAQs.Create(r.Context(), in)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminFAQsNew, failMessage(resp, "Could not create FAQ"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "faq", 0, "create", "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminFAQs, "FAQ created")
}

// Update edits an FAQ entry. POST /admin/faqs/{id}
func (h *FAQsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminFAQs, "Invalid FAQ ID")
		return
	}
	returnTo := fmt.Sprintf("%s/%d", redirectAdminFAQs, id)

	in, msg := h.parseInput(w, r, returnTo)
	if msg == abortRendered {
		return
	}
	if msg != "" {
		flashError(w, r, h.renderer, returnTo, msg)
		return
	}

	resp := h.services.FAQs.Update(r.Context(), id, in)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, returnTo, failMessage(resp, "Could not update FAQ"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "faq", id, "update", "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminFAQs, "FAQ updated")
}

// Delete removes an FAQ entry. POST /admin/faqs/{id}/delete
func (h *FAQsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminFAQs, "Invalid FAQ ID")
		return
	}

	resp := h.services.FAQs.Delete(r.Context(), id)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminFAQs, failMessage(resp, "Could not delete FAQ"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "faq", id, "delete", "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminFAQs, "FAQ deleted")
}

// abortRendered signals that parseInput already wrote the response.
const abortRendered = "\x00rendered"

func (h *FAQsHandler) parseInput(w http.ResponseWriter, r *http.Request, returnTo string) (resource.FAQInput, string) {
	if !parseFormOrRedirect(w, r, h.renderer, returnTo) {
		return resource.FAQInput{}, abortRendered
	}

	in := resource.FAQInput{
		Question: strings.TrimSpace(r.FormValue("question")),
		Answer:   strings.TrimSpace(r.FormValue("answer")),
		Slug:     strings.TrimSpace(r.FormValue("slug")),
		IsActive: r.FormValue("is_active") == "on",
	}
	if in.Question == "" {
		return in, "Question is required"
	}
	if in.Answer == "" {
		return in, "Answer is required"
	}
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Question)
	} else if msg := ValidateSlugFormat(in.Slug); msg != "" {
		return in, msg
	}
	return in, ""
}
