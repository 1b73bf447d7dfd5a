// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"
	"io"
	"net/http"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/model"
)

const profileEndpoint = "/api/hospitality/profile-management/"

// ProfileUpdate carries the editable operator profile fields. The avatar, if
// present, is sent as a multipart file part.
type ProfileUpdate struct {
	Name           string
	Phone          string
	Location       string
	AvatarFilename string
	Avatar         io.Reader
}

// ProfileService reads and updates the operator's own profile.
type ProfileService struct {
	api *apiclient.Client
}

// Get fetches the current operator's profile.
func (s *ProfileService) Get(ctx context.Context) (model.AdminUser, *apiclient.APIError) {
	resp := s.api.Get(ctx, profileEndpoint, nil)
	return apiclient.DecodeItem[model.AdminUser](resp)
}

// Update saves profile fields, uploading the avatar when one is attached.
// Empty fields are omitted so the backend keeps its current values.
func (s *ProfileService) Update(ctx context.Context, in ProfileUpdate) *apiclient.Response {
	fields := map[string]string{
		"name":          in.Name,
		"mobile_number": in.Phone,
		"location":      in.Location,
	}
	if in.Avatar != nil {
		return s.api.Upload(ctx, http.MethodPut, profileEndpoint,
			"profile_picture", in.AvatarFilename, in.Avatar, fields)
	}
	body := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			body[k] = v
		}
	}
	return s.api.Put(ctx, profileEndpoint, body)
}
