// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Ticket is a support request raised by a marketplace user or venue.
type Ticket struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	CreatedAt   string `json:"created_at"`

	// Replies is only populated on the detail endpoint.
	Replies []TicketReply `json:"replies"`
}

// TicketReply is one message in a ticket's conversation thread.
type TicketReply struct {
	ID        int64  `json:"id"`
	TicketID  int64  `json:"ticket"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// TicketDetail is the flat shape the ticket detail view renders.
type TicketDetail struct {
	ID            int64
	Subject       string
	Description   string
	StatusLabel   string
	PriorityLabel string
	UserName      string
	UserEmail     string
	OpenedAt      string
}

// Project converts the raw record into its detail view shape.
func (t Ticket) Project() TicketDetail {
	return TicketDetail{
		ID:            t.ID,
		Subject:       OrNA(t.Subject),
		Description:   OrNA(t.Description),
		StatusLabel:   StatusLabel(OrDefault(t.Status, TicketOpen)),
		PriorityLabel: StatusLabel(OrDefault(t.Priority, PriorityMedium)),
		UserName:      OrNA(t.UserName),
		UserEmail:     OrNA(t.UserEmail),
		OpenedAt:      OrNA(t.CreatedAt),
	}
}

// SearchFields lists the free-text columns used for local narrowing.
func (t Ticket) SearchFields() []string {
	return []string{t.Subject, t.Description, t.UserName, t.UserEmail}
}
