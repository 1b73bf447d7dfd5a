// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/config"
	"github.com/venuedesk/admin-go/internal/imaging"
	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/resource"
)

// ProfileHandler lets the operator edit their own profile and password.
type ProfileHandler struct {
	base
	cfg *config.Config
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(d Deps) *ProfileHandler {
	return &ProfileHandler{base: newBase(d), cfg: d.Cfg}
}

// Show renders the profile page. GET /admin/profile
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireRemote(w, r, h.renderer, redirectAdmin, "Profile", func() (model.AdminUser, *apiclient.APIError) {
		return h.services.Profile.Get(r.Context())
	})
	if !ok {
		return
	}

	data := h.pageData(r, "My profile")
	data.Data = profile
	if err := h.renderer.Render(w, r, "admin/profile", data); err != nil {
		logAndInternalError(w, "render profile", "error", err)
	}
}

// Update saves profile fields and, optionally, a new avatar.
// POST /admin/profile (multipart)
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		flashError(w, r, h.renderer, redirectAdminProfile, "Invalid form data")
		return
	}

	in := resource.ProfileUpdate{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Location: strings.TrimSpace(r.FormValue("location")),
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer func() { _ = file.Close() }()

		creative, prepErr := imaging.Prepare(file, header.Filename, imaging.Options{
			MaxBytes: h.cfg.MaxUploadBytes,
			MaxWidth: h.cfg.MaxImageWidth,
		})
		if prepErr != nil {
			flashError(w, r, h.renderer, redirectAdminProfile, avatarErrorMessage(prepErr))
			return
		}
		in.Avatar = bytes.NewReader(creative.Data)
		in.AvatarFilename = creative.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		flashError(w, r, h.renderer, redirectAdminProfile, "Could not read avatar upload")
		return
	}

	resp := h.services.Profile.Update(r.Context(), in)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminProfile, failMessage(resp, "Could not update profile"))
		return
	}

	// Keep the session copy in step so the header shows the new name at once.
	if user, ok := h.sessions.User(r.Context()); ok {
		if in.Name != "" {
			user.Name = in.Name
		}
		h.sessions.SetUser(r.Context(), user)
	}

	flashSuccess(w, r, h.renderer, redirectAdminProfile, "Profile updated")
}

// ChangePassword changes the operator's password. POST /admin/profile/password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminProfile) {
		return
	}

	oldPassword := r.FormValue("old_password")
	newPassword := r.FormValue("new_password")
	confirmation := r.FormValue("new_password2")

	if oldPassword == "" {
		flashError(w, r, h.renderer, redirectAdminProfile, "Current password is required")
		return
	}
	if msg := ValidatePassword(newPassword, confirmation); msg != "" {
		flashError(w, r, h.renderer, redirectAdminProfile, msg)
		return
	}

	resp := h.services.Auth.ChangePassword(r.Context(), oldPassword, newPassword, confirmation)
	if !resp.Success {
		if resp.Err != nil && redirectIfAuthExpired(w, r, h.renderer, resp.Err) {
			return
		}
		flashError(w, r, h.renderer, redirectAdminProfile, failMessage(resp, "Could not change password"))
		return
	}

	h.logger.Info("password changed", "email", h.sessionEmail(r))
	flashSuccess(w, r, h.renderer, redirectAdminProfile, "Password changed")
}

func (h *ProfileHandler) sessionEmail(r *http.Request) string {
	if user, ok := h.sessions.User(r.Context()); ok {
		return user.Email
	}
	return ""
}

// avatarErrorMessage maps image preparation failures to operator-facing text.
func avatarErrorMessage(err error) string {
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		return "Avatar image is too large"
	case errors.Is(err, imaging.ErrUnsupported):
		return "Unsupported image format"
	default:
		return "Could not process avatar image"
	}
}
