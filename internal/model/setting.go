// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Setting types recognized by the backend.
const (
	SettingTypeTerms   = "terms"
	SettingTypePrivacy = "privacy"
	SettingTypeAbout   = "about"
	SettingTypeContact = "contact"
)

// Setting is a site-wide content block (terms, privacy policy, about page).
type Setting struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updated_at"`
}

// SearchFields lists the free-text columns used for local narrowing.
func (s Setting) SearchFields() []string {
	return []string{s.Title, s.Content, s.Type}
}
