// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Registration is a pending vendor or user signup under review.
type Registration struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	Location         string `json:"location"`
	Type             string `json:"type"`
	SubscriptionType string `json:"subscription_type"`
	IsVerified       bool   `json:"is_verified"`
	IsBlocked        bool   `json:"is_blocked"`
	IsActive         bool   `json:"is_active"`
	RegistrationDate string `json:"registration_date"`
}

// RegistrationDetail is the flat shape the registration detail view renders.
type RegistrationDetail struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Location     string
	Type         string
	Subscription string
	Verified     string
	Blocked      string
	Active       string
	RegisteredAt string
}

// Project converts the raw record into its detail view shape.
func (r Registration) Project() RegistrationDetail {
	return RegistrationDetail{
		ID:           r.ID,
		Name:         OrNA(r.Name),
		Email:        OrNA(r.Email),
		Phone:        OrNA(r.PhoneNumber),
		Location:     OrNA(r.Location),
		Type:         OrDefault(r.Type, "user"),
		Subscription: OrDefault(r.SubscriptionType, "Free"),
		Verified:     YesNo(r.IsVerified),
		Blocked:      YesNo(r.IsBlocked),
		Active:       YesNo(r.IsActive),
		RegisteredAt: OrNA(r.RegistrationDate),
	}
}

// SearchFields lists the free-text columns used for local narrowing.
func (r Registration) SearchFields() []string {
	return []string{r.Name, r.Email, r.PhoneNumber, r.Location}
}
