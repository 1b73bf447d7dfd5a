// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"
	"encoding/json"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/listing"
	"github.com/venuedesk/admin-go/internal/model"
)

const promotionFamily = "/api/dashboard/admin/promotions/"

// PromotionService manages promotional offer moderation.
type PromotionService struct {
	api *apiclient.Client
}

// List fetches promotions. The list body carries the array under "data" with
// a "total" count.
func (s *PromotionService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Promotion], *apiclient.APIError) {
	var zero apiclient.ListResult[model.Promotion]
	resp := s.api.Get(ctx, promotionFamily+"all", q.Values())
	if resp.Err != nil {
		return zero, resp.Err
	}
	var wire struct {
		Data  *[]model.Promotion `json:"data"`
		Total *int               `json:"total"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil || wire.Data == nil {
		return zero, apiclient.NewDecodeError(`promotion list body missing "data" array`, err)
	}
	result := apiclient.ListResult[model.Promotion]{
		Items:      *wire.Data,
		TotalCount: len(*wire.Data),
	}
	if wire.Total != nil {
		result.TotalCount = *wire.Total
	}
	return result, nil
}

// Pending fetches promotions still awaiting moderation.
func (s *PromotionService) Pending(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Promotion], *apiclient.APIError) {
	resp := s.api.Get(ctx, promotionFamily+"pending/", q.Values())
	return apiclient.DecodeResults[model.Promotion](resp)
}

// Get fetches one promotion by ID.
func (s *PromotionService) Get(ctx context.Context, id int64) (model.Promotion, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(promotionFamily, id), nil)
	return apiclient.DecodeItem[model.Promotion](resp)
}

// Approve marks the promotion approved.
func (s *PromotionService) Approve(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Post(ctx, actionPath(promotionFamily, id, "approve"), nil)
}

// Reject marks the promotion rejected with the supplied reason.
func (s *PromotionService) Reject(ctx context.Context, id int64, reason string) *apiclient.Response {
	return s.api.Post(ctx, actionPath(promotionFamily, id, "reject"), map[string]string{
		"rejection_reason": reason,
	})
}
