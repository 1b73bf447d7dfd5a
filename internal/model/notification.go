// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Notification is an admin inbox entry produced by backend events.
type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Kind      string `json:"notification_type"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// SearchFields lists the free-text columns used for local narrowing.
func (n Notification) SearchFields() []string {
	return []string{n.Title, n.Message}
}

// UnreadCount is the poll snapshot cached between notification fetches.
type UnreadCount struct {
	Count     int    `json:"count"`
	FetchedAt string `json:"fetched_at"`
}
