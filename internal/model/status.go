// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the transient client-side copies of backend-owned
// records and the projections the detail views render. The backend is the
// authority; nothing here is persisted across navigations.
package model

// Approval states shared by banners and promotions.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Withdrawal request states.
const (
	WithdrawalPending    = "pending"
	WithdrawalProcessing = "processing"
	WithdrawalApproved   = "approved"
	WithdrawalRejected   = "rejected"
	WithdrawalCompleted  = "completed"
)

// Support ticket states and priorities.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// statusLabels is the fixed status-to-display-label table applied uniformly
// across banners, promotions, withdrawals and tickets.
var statusLabels = map[string]string{
	StatusPending:        "Pending",
	StatusApproved:       "Approved",
	StatusRejected:       "Rejected",
	WithdrawalProcessing: "Processing",
	WithdrawalCompleted:  "Completed",
	TicketOpen:           "Open",
	TicketInProgress:     "In Progress",
	TicketResolved:       "Resolved",
	TicketClosed:         "Closed",
	PriorityLow:          "Low",
	PriorityMedium:       "Medium",
	PriorityHigh:         "High",
	PriorityUrgent:       "Urgent",
}

// StatusLabel maps a raw status value to its display label. Unknown values
// fall back to the default so the view never shows an empty badge.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return OrDefault(status, "Pending")
}

// OrDefault returns value, or the given default when value is empty. Detail
// views never display a raw empty field.
func OrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// OrNA returns value or "N/A" when empty.
func OrNA(value string) string {
	return OrDefault(value, "N/A")
}

// YesNo formats a boolean flag for display.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
