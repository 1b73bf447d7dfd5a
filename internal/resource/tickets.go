// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const (
	ticketFamily     = "/api/dashboard/admin/tickets/"
	ticketCoreFamily = "/api/core/tickets/"
)

// TicketService manages the support ticket queue.
type TicketService struct {
	api *apiclient.Client
}

// List fetches support tickets as a paginated results body.
func (s *TicketService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Ticket], *apiclient.APIError) {
	resp := s.api.Get(ctx, ticketFamily, q.Values())
	return apiclient.DecodeResults[model.Ticket](resp)
}

// Get fetches one ticket by ID.
func (s *TicketService) Get(ctx context.Context, id int64) (model.Ticket, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(ticketFamily, id), nil)
	return apiclient.DecodeItem[model.Ticket](resp)
}

// SetStatus moves the ticket to the given status.
func (s *TicketService) SetStatus(ctx context.Context, id int64, status string) *apiclient.Response {
	return s.api.Patch(ctx, actionPath(ticketFamily, id, "status"), map[string]string{
		"status": status,
	})
}

// SetPriority updates the ticket priority through the same status endpoint.
func (s *TicketService) SetPriority(ctx context.Context, id int64, priority string) *apiclient.Response {
	return s.api.Patch(ctx, actionPath(ticketFamily, id, "status"), map[string]string{
		"priority": priority,
	})
}

// Resolve is SetStatus with the resolved state.
func (s *TicketService) Resolve(ctx context.Context, id int64) *apiclient.Response {
	return s.SetStatus(ctx, id, model.TicketResolved)
}

// Reply appends a message to the ticket's conversation thread.
func (s *TicketService) Reply(ctx context.Context, id int64, message string) *apiclient.Response {
	return s.api.Post(ctx, actionPath(ticketCoreFamily, id, "replies/create"), map[string]any{
		"ticket":  id,
		"message": message,
	})
}

// Delete removes the ticket.
func (s *TicketService) Delete(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Delete(ctx, itemPath(ticketFamily, id))
}
