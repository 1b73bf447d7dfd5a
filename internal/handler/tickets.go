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
)

// TicketsHandler works the support queue: status and priority changes plus
// replies to the requester.
type TicketsHandler struct {
	base
	screen *listScreen[model.Ticket]
}

// NewTicketsHandler creates a new TicketsHandler.
func NewTicketsHandler(d Deps) *TicketsHandler {
	b := newBase(d)
	return &TicketsHandler{
		base:   b,
		screen: newListScreen(b.services.Tickets.List, model.Ticket.SearchFields, d.Cache, "tickets:list"),
	}
}

// List renders the ticket queue. GET /admin/tickets
func (h *TicketsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.screen.load(r, "status", "priority")
	if redirectIfAuthExpired(w, r, h.renderer, st.Err) {
		return
	}

	data := h.pageData(r, "Support tickets")
	data.Degraded = st.Degraded
	data.Data = newListPage(st, redirectAdminTickets)
	if err := h.renderer.Render(w, r, "admin/tickets_list", data); err != nil {
		logAndInternalError(w, "render tickets list", "error", err)
	}
}

// Detail renders one ticket with its reply thread. GET /admin/tickets/{id}
func (h *TicketsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminTickets, "Invalid ticket ID")
		return
	}

	ticket, ok := requireRemote(w, r, h.renderer, redirectAdminTickets, "Ticket", func() (model.Ticket, *apiclient.APIError) {
		return h.services.Tickets.Get(r.Context(), id)
	})
	if !ok {
		return
	}

	data := h.pageData(r, ticket.Subject)
	data.Data = struct {
		Ticket model.Ticket
		Detail model.TicketDetail
	}{ticket, ticket.Project()}
	if err := h.renderer.Render(w, r, "admin/tickets_detail", data); err != nil {
		logAndInternalError(w, "render ticket detail", "error", err)
	}
}

// SetStatus changes the ticket status. POST /admin/tickets/{id}/status
func (h *TicketsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	h.patch(w, r, "status")
}

// SetPriority changes the ticket priority. POST /admin/tickets/{id}/priority
func (h *TicketsHandler) SetPriority(w http.ResponseWriter, r *http.Request) {
	h.patch(w, r, "priority")
}

func (h *TicketsHandler) patch(w http.ResponseWriter, r *http.Request, field string) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminTickets, "Invalid ticket ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminTickets) {
		return
	}
	value := r.FormValue(field)
	returnTo := fmt.Sprintf(redirectAdminTicketsID, id)
	if value == "" {
		flashError(w, r, h.renderer, returnTo, "Missing "+field)
		return
	}

	var resp *apiclient.Response
	if field == "status" {
		resp = h.services.Tickets.SetStatus(r.Context(), id, value)
	} else {
		resp = h.services.Tickets.SetPriority(r.Context(), id, value)
	}
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, returnTo, failMessage(resp, "Could not update ticket"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "ticket", id, field+":"+value, "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, returnTo, "Ticket "+field+" updated")
}

// Resolve marks a ticket resolved. POST /admin/tickets/{id}/resolve
func (h *TicketsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminTickets, "Invalid ticket ID")
		return
	}

	resp := h.services.Tickets.Resolve(r.Context(), id)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminTicketsID, id), failMessage(resp, "Could not resolve ticket"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "ticket", id, "resolve", "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminTickets, "Ticket resolved")
}

// Reply posts an admin reply to the requester. POST /admin/tickets/{id}/reply
func (h *TicketsHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminTickets, "Invalid ticket ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminTickets) {
		return
	}
	returnTo := fmt.Sprintf(redirectAdminTicketsID, id)

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		flashError(w, r, h.renderer, returnTo, "Reply message is required")
		return
	}

	resp := h.services.Tickets.Reply(r.Context(), id, message)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, returnTo, failMessage(resp, "Could not send reply"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "ticket", id, "reply", "")
	flashSuccess(w, r, h.renderer, returnTo, "Reply sent")
}

// Delete removes a ticket. POST /admin/tickets/{id}/delete
func (h *TicketsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminTickets, "Invalid ticket ID")
		return
	}

	resp := h.services.Tickets.Delete(r.Context(), id)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminTickets, failMessage(resp, "Could not delete ticket"))
		return
	}

	logging.Audit(h.events, middleware.GetUserEmail(r), "ticket", id, "delete", "")
	h.screen.refresh(r)
	flashSuccess(w, r, h.renderer, redirectAdminTickets, "Ticket deleted")
}
