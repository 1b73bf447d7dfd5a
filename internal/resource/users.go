// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const userFamily = "/api/dashboard/admin/users/"

// User moderation verbs accepted by the shared action endpoint.
const (
	UserActionBlock    = "block"
	UserActionUnblock  = "unblock"
	UserActionVerify   = "verify"
	UserActionUnverify = "unverify"
	UserActionDelete   = "delete"
)

// UserService administers marketplace accounts.
type UserService struct {
	api *apiclient.Client
}

// List fetches managed users as a paginated results body.
func (s *UserService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.ManagedUser], *apiclient.APIError) {
	resp := s.api.Get(ctx, userFamily, q.Values())
	return apiclient.DecodeResults[model.ManagedUser](resp)
}

// Get fetches one managed user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (model.ManagedUser, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(userFamily, id), nil)
	return apiclient.DecodeItem[model.ManagedUser](resp)
}

// Action performs a moderation verb on the account. Block requires a reason;
// the caller validates before the request is built.
func (s *UserService) Action(ctx context.Context, id int64, verb, reason string) *apiclient.Response {
	body := map[string]string{"action": verb}
	if reason != "" {
		body["reason"] = reason
	}
	return s.api.Post(ctx, actionPath(userFamily, id, "action"), body)
}
