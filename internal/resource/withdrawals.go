// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const withdrawalFamily = "/api/dashboard/admin/withdrawals/"

// WithdrawalService processes venue payout requests. Approve and reject are
// distinct server verbs.
type WithdrawalService struct {
	api *apiclient.Client
}

// List fetches withdrawal requests. Supports multi-status, venue, date range
// and amount filters plus ordering, all carried in the query.
func (s *WithdrawalService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Withdrawal], *apiclient.APIError) {
	resp := s.api.Get(ctx, withdrawalFamily+"all", q.Values())
	return apiclient.DecodeResults[model.Withdrawal](resp)
}

// Pending fetches withdrawal requests not yet processed.
func (s *WithdrawalService) Pending(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Withdrawal], *apiclient.APIError) {
	resp := s.api.Get(ctx, withdrawalFamily+"pending/", q.Values())
	return apiclient.DecodeResults[model.Withdrawal](resp)
}

// Get fetches one withdrawal by ID.
func (s *WithdrawalService) Get(ctx context.Context, id int64) (model.Withdrawal, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(withdrawalFamily, id), nil)
	return apiclient.DecodeItem[model.Withdrawal](resp)
}

// Approve releases the payout.
func (s *WithdrawalService) Approve(ctx context.Context, id int64, notes string) *apiclient.Response {
	return s.api.Post(ctx, actionPath(withdrawalFamily, id, "approve"), map[string]string{
		"notes": notes,
	})
}

// Reject declines the payout with a required reason.
func (s *WithdrawalService) Reject(ctx context.Context, id int64, reason, notes string) *apiclient.Response {
	return s.api.Post(ctx, actionPath(withdrawalFamily, id, "reject"), map[string]string{
		"reason": reason,
		"notes":  notes,
	})
}

// MarkProcessing flags the payout as being handled.
func (s *WithdrawalService) MarkProcessing(ctx context.Context, id int64, notes string) *apiclient.Response {
	return s.api.Post(ctx, actionPath(withdrawalFamily, id, "processing"), map[string]string{
		"notes": notes,
	})
}
