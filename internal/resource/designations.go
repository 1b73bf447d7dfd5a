// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
)

const designationFamily = "/api/dashboard/admin/designations/"

// Designation is a staff role label maintained by the admin.
type Designation struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// DesignationService manages staff role labels.
type DesignationService struct {
	api *apiclient.Client
}

// List fetches all designations.
func (s *DesignationService) List(ctx context.Context) ([]Designation, *apiclient.APIError) {
	resp := s.api.Get(ctx, designationFamily, nil)
	result, err := apiclient.DecodeResults[Designation](resp)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Create adds a designation.
func (s *DesignationService) Create(ctx context.Context, title string) *apiclient.Response {
	return s.api.Post(ctx, designationFamily, map[string]string{"title": title})
}

// Update renames a designation.
func (s *DesignationService) Update(ctx context.Context, id int64, title string) *apiclient.Response {
	return s.api.Put(ctx, itemPath(designationFamily, id), map[string]string{"title": title})
}

// Delete removes a designation.
func (s *DesignationService) Delete(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Delete(ctx, itemPath(designationFamily, id))
}
