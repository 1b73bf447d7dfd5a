// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// Banner is a venue-submitted promotional banner awaiting moderation.
type Banner struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"image"`
	Location        string `json:"location"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ApprovalStatus  string `json:"approval_status"`
	RejectionReason string `json:"rejection_reason"`
	VenueName       string `json:"venue_name"`
	VenueEmail      string `json:"venue_email"`
	CreatedAt       string `json:"created_at"`
}

// BannerDetail is the flat shape the banner detail view renders.
type BannerDetail struct {
	ID              int64
	Title           string
	Description     string
	ImageURL        string
	Location        string
	Schedule        string
	StatusLabel     string
	RejectionReason string
	VenueName       string
	VenueEmail      string
	SubmittedAt     string
}

// Project converts the raw record into its detail view shape. Missing fields
// get documented defaults; the rejection reason is surfaced unmodified.
func (b Banner) Project() BannerDetail {
	return BannerDetail{
		ID:              b.ID,
		Title:           OrNA(b.Title),
		Description:     OrNA(b.Description),
		ImageURL:        b.ImageURL,
		Location:        OrNA(b.Location),
		Schedule:        formatRange(b.StartDate, b.EndDate),
		StatusLabel:     StatusLabel(b.ApprovalStatus),
		RejectionReason: b.RejectionReason,
		VenueName:       OrNA(b.VenueName),
		VenueEmail:      OrNA(b.VenueEmail),
		SubmittedAt:     OrNA(b.CreatedAt),
	}
}

// SearchFields lists the free-text columns used for local narrowing.
func (b Banner) SearchFields() []string {
	return []string{b.Title, b.Description, b.VenueName, b.VenueEmail}
}

func formatRange(start, end string) string {
	if start == "" && end == "" {
		return "N/A"
	}
	return fmt.Sprintf("%s – %s", OrNA(start), OrNA(end))
}
