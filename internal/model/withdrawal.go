// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// Withdrawal is a venue payout request.
type Withdrawal struct {
	ID               int64   `json:"id"`
	VenueName        string  `json:"venue_name"`
	VenueEmail       string  `json:"venue_email"`
	HospitalityVenue string  `json:"hospitality_venue"`
	Amount           float64 `json:"amount"`
	AvailableBalance float64 `json:"available_balance"`
	BankDetails      string  `json:"bank_details"`
	Status           string  `json:"status"`
	Notes            string  `json:"notes"`
	RequestedDate    string  `json:"requested_date"`
	ProcessedDate    string  `json:"processed_date"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// WithdrawalDetail is the flat shape the withdrawal detail view renders.
type WithdrawalDetail struct {
	ID          int64
	VenueName   string
	VenueEmail  string
	Venue       string
	Amount      string
	Balance     string
	BankDetails string
	StatusLabel string
	Notes       string
	RequestedAt string
	ProcessedAt string
}

// Project converts the raw record into its detail view shape.
func (w Withdrawal) Project() WithdrawalDetail {
	return WithdrawalDetail{
		ID:          w.ID,
		VenueName:   OrNA(w.VenueName),
		VenueEmail:  OrNA(w.VenueEmail),
		Venue:       OrNA(w.HospitalityVenue),
		Amount:      fmt.Sprintf("%.2f", w.Amount),
		Balance:     fmt.Sprintf("%.2f", w.AvailableBalance),
		BankDetails: OrNA(w.BankDetails),
		StatusLabel: StatusLabel(w.Status),
		Notes:       w.Notes,
		RequestedAt: OrNA(w.RequestedDate),
		ProcessedAt: OrDefault(w.ProcessedDate, "Not processed"),
	}
}

// SearchFields lists the free-text columns used for local narrowing.
func (w Withdrawal) SearchFields() []string {
	return []string{w.VenueName, w.VenueEmail, w.HospitalityVenue}
}
