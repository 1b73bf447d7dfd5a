// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const faqFamily = "/api/core/faqs/"

// FAQInput is the payload for creating or updating a help entry.
type FAQInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Slug     string `json:"slug,omitempty"`
	IsActive bool   `json:"is_active"`
}

// FAQService manages public help entries.
type FAQService struct {
	api *apiclient.Client
}

// List fetches help entries as a paginated results body.
func (s *FAQService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.FAQ], *apiclient.APIError) {
	resp := s.api.Get(ctx, faqFamily, q.Values())
	return apiclient.DecodeResults[model.FAQ](resp)
}

// Get fetches one help entry by ID.
func (s *FAQService) Get(ctx context.Context, id int64) (model.FAQ, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(faqFamily, id), nil)
	return apiclient.DecodeItem[model.FAQ](resp)
}

// Create adds a help entry.
func (s *FAQService) Create(ctx context.Context, in FAQInput) *apiclient.Response {
	return s.api.Post(ctx, faqFamily, in)
}

// Update replaces a help entry.
func (s *FAQService) Update(ctx context.Context, id int64, in FAQInput) *apiclient.Response {
	return s.api.Put(ctx, itemPath(faqFamily, id), in)
}

// Delete removes a help entry.
func (s *FAQService) Delete(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Delete(ctx, itemPath(faqFamily, id))
}
