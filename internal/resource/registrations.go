// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const registrationFamily = "/api/dashboard/admin/registrations/"

// RegistrationService reviews pending vendor and user signups.
type RegistrationService struct {
	api *apiclient.Client
}

// List fetches registrations as a paginated results body.
func (s *RegistrationService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Registration], *apiclient.APIError) {
	resp := s.api.Get(ctx, registrationFamily, q.Values())
	return apiclient.DecodeResults[model.Registration](resp)
}

// Get fetches one registration by ID.
func (s *RegistrationService) Get(ctx context.Context, id int64) (model.Registration, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(registrationFamily, id), nil)
	return apiclient.DecodeItem[model.Registration](resp)
}

// Approve accepts the registration via the shared action endpoint.
func (s *RegistrationService) Approve(ctx context.Context, id int64) *apiclient.Response {
	return s.action(ctx, id, "approve", "")
}

// Reject declines the registration with a required reason.
func (s *RegistrationService) Reject(ctx context.Context, id int64, reason string) *apiclient.Response {
	return s.action(ctx, id, "reject", reason)
}

func (s *RegistrationService) action(ctx context.Context, id int64, verb, reason string) *apiclient.Response {
	body := map[string]string{"action": verb}
	if reason != "" {
		body["reason"] = reason
	}
	return s.api.Post(ctx, actionPath(registrationFamily, id, "action"), body)
}

// Update applies a partial edit to the registration record.
func (s *RegistrationService) Update(ctx context.Context, id int64, fields map[string]any) *apiclient.Response {
	return s.api.Patch(ctx, itemPath(registrationFamily, id), fields)
}

// Delete removes the registration.
func (s *RegistrationService) Delete(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Delete(ctx, itemPath(registrationFamily, id))
}
