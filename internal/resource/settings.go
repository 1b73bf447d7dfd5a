// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const settingFamily = "/api/core/settings/"

// SettingInput is the payload for creating or updating a content block.
type SettingInput struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SettingService manages site-wide content blocks, keyed by type rather than
// numeric ID.
type SettingService struct {
	api *apiclient.Client
}

// List fetches content blocks as a paginated results body.
func (s *SettingService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Setting], *apiclient.APIError) {
	resp := s.api.Get(ctx, settingFamily, q.Values())
	return apiclient.DecodeResults[model.Setting](resp)
}

// Get fetches the content block of the given type.
func (s *SettingService) Get(ctx context.Context, settingType string) (model.Setting, *apiclient.APIError) {
	resp := s.api.Get(ctx, settingFamily+settingType+"/", nil)
	return apiclient.DecodeItem[model.Setting](resp)
}

// Create adds a content block.
func (s *SettingService) Create(ctx context.Context, in SettingInput) *apiclient.Response {
	return s.api.Post(ctx, settingFamily, in)
}

// Update replaces the content block of the given type.
func (s *SettingService) Update(ctx context.Context, settingType string, in SettingInput) *apiclient.Response {
	return s.api.Put(ctx, settingFamily+settingType+"/", in)
}

// Delete removes the content block of the given type.
func (s *SettingService) Delete(ctx context.Context, settingType string) *apiclient.Response {
	return s.api.Delete(ctx, settingFamily+settingType+"/")
}
