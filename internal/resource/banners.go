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

const bannerFamily = "/api/dashboard/admin/banners/"

// BannerStats is the moderation summary returned alongside the banner list.
type BannerStats struct {
	TotalPending  int `json:"total_pending"`
	TotalApproved int `json:"total_approved"`
	TotalRejected int `json:"total_rejected"`
}

// BannerService manages promotional banner moderation.
type BannerService struct {
	api *apiclient.Client

	lastStats BannerStats
}

// List fetches banners. The list body nests the array and a statistics block
// under "data"; anything else is a decode error.
func (s *BannerService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Banner], *apiclient.APIError) {
	var zero apiclient.ListResult[model.Banner]
	resp := s.api.Get(ctx, bannerFamily+"all", q.Values())
	if resp.Err != nil {
		return zero, resp.Err
	}
	var wire struct {
		Data *struct {
			Banners    []model.Banner `json:"banners"`
			Statistics *BannerStats   `json:"statistics"`
		} `json:"data"`
		Count *int `json:"count"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil || wire.Data == nil {
		return zero, apiclient.NewDecodeError(`banner list body missing "data"`, err)
	}
	if wire.Data.Statistics != nil {
		s.lastStats = *wire.Data.Statistics
	}
	result := apiclient.ListResult[model.Banner]{
		Items:      wire.Data.Banners,
		TotalCount: len(wire.Data.Banners),
	}
	if wire.Count != nil {
		result.TotalCount = *wire.Count
	}
	return result, nil
}

// Pending fetches banners still awaiting moderation.
func (s *BannerService) Pending(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Banner], *apiclient.APIError) {
	resp := s.api.Get(ctx, bannerFamily+"pending/", q.Values())
	return apiclient.DecodeResults[model.Banner](resp)
}

// Stats returns the statistics block from the most recent List call.
func (s *BannerService) Stats() BannerStats { return s.lastStats }

// Get fetches one banner by ID.
func (s *BannerService) Get(ctx context.Context, id int64) (model.Banner, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(bannerFamily, id), nil)
	return apiclient.DecodeItem[model.Banner](resp)
}

// Approve marks the banner approved.
func (s *BannerService) Approve(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Post(ctx, actionPath(bannerFamily, id, "approve"), nil)
}

// Reject marks the banner rejected with the supplied reason. The reason is
// required; the caller validates before getting here.
func (s *BannerService) Reject(ctx context.Context, id int64, reason string) *apiclient.Response {
	return s.api.Post(ctx, actionPath(bannerFamily, id, "reject"), map[string]string{
		"rejection_reason": reason,
	})
}
