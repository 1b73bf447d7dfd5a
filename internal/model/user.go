// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// ManagedUser is a marketplace account administered from the users screen.
type ManagedUser struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	AvatarURL        string `json:"avatar"`
	IsBlocked        bool   `json:"is_blocked"`
	IsVerified       bool   `json:"is_verified"`
	RegistrationDate string `json:"registration_date"`
}

// ManagedUserDetail is the flat shape the user detail view renders.
type ManagedUserDetail struct {
	ID           int64
	Name         string
	Email        string
	AvatarURL    string
	Blocked      string
	Verified     string
	RegisteredAt string
}

// Project converts the raw record into its detail view shape.
func (u ManagedUser) Project() ManagedUserDetail {
	return ManagedUserDetail{
		ID:           u.ID,
		Name:         OrNA(u.Name),
		Email:        OrNA(u.Email),
		AvatarURL:    u.AvatarURL,
		Blocked:      YesNo(u.IsBlocked),
		Verified:     YesNo(u.IsVerified),
		RegisteredAt: OrNA(u.RegistrationDate),
	}
}

// SearchFields lists the free-text columns used for local narrowing.
func (u ManagedUser) SearchFields() []string {
	return []string{u.Name, u.Email}
}

// AdminUser is the authenticated dashboard operator, as returned by the
// backend's login and profile endpoints.
type AdminUser struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone_number"`
	AvatarURL string `json:"avatar"`
	Role      string `json:"role"`
}

// DisplayName returns the operator's name, falling back to the email.
func (a AdminUser) DisplayName() string {
	return OrDefault(a.Name, a.Email)
}
