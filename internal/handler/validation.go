package handler

import (
	"strings"

	"github.com/venuedesk/admin-go/internal/confirm"
	"github.com/venuedesk/admin-go/internal/util"
)

// ValidateReason checks the reason field for a moderation verb.
// Returns an error message string if validation fails, or empty string if valid.
func ValidateReason(verb, reason string) string {
	if confirm.RequiresReason(verb) && strings.TrimSpace(reason) == "" {
		return "A reason is required for this action"
	}
	return ""
}

// ValidateEmail performs a minimal shape check; the backend is the authority.
func ValidateEmail(email string) string {
	if email == "" {
		return "Email is required"
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "Invalid email address"
	}
	return ""
}

// ValidatePassword enforces the local minimum before the backend sees it.
func ValidatePassword(password, confirmation string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	if password != confirmation {
		return "Passwords do not match"
	}
	return ""
}

// ValidateSlugFormat validates only the slug format without checking existence.
func ValidateSlugFormat(slug string) string {
	if slug == "" {
		return "Slug is required"
	}
	if !util.IsValidSlug(slug) {
		return "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	return ""
}
