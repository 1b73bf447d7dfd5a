// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Promotion is a venue-submitted promotional offer awaiting moderation.
type Promotion struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"image"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ApprovalStatus  string `json:"approval_status"`
	RejectionReason string `json:"rejection_reason"`
	IsFeatured      bool   `json:"is_featured"`
	IsActive        bool   `json:"is_active"`
	VenueName       string `json:"venue_name"`
	VenueEmail      string `json:"venue_email"`
	CreatedAt       string `json:"created_at"`
}

// PromotionDetail is the flat shape the promotion detail view renders.
type PromotionDetail struct {
	ID              int64
	Title           string
	Description     string
	ImageURL        string
	Schedule        string
	StatusLabel     string
	RejectionReason string
	Featured        string
	Active          string
	VenueName       string
	VenueEmail      string
	SubmittedAt     string
}

// Project converts the raw record into its detail view shape.
func (p Promotion) Project() PromotionDetail {
	return PromotionDetail{
		ID:              p.ID,
		Title:           OrNA(p.Title),
		Description:     OrNA(p.Description),
		ImageURL:        p.ImageURL,
		Schedule:        formatRange(p.StartDate, p.EndDate),
		StatusLabel:     StatusLabel(p.ApprovalStatus),
		RejectionReason: p.RejectionReason,
		Featured:        YesNo(p.IsFeatured),
		Active:          YesNo(p.IsActive),
		VenueName:       OrNA(p.VenueName),
		VenueEmail:      OrNA(p.VenueEmail),
		SubmittedAt:     OrNA(p.CreatedAt),
	}
}

// SearchFields lists the free-text columns used for local narrowing.
func (p Promotion) SearchFields() []string {
	return []string{p.Title, p.Description, p.VenueName, p.VenueEmail}
}
