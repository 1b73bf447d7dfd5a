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

const notificationFamily = "/api/dashboard/admin/notifications/"

// NotificationService manages the admin notification inbox.
type NotificationService struct {
	api *apiclient.Client
}

// List fetches notifications as a paginated results body.
func (s *NotificationService) List(ctx context.Context, q listing.Query) (apiclient.ListResult[model.Notification], *apiclient.APIError) {
	resp := s.api.Get(ctx, notificationFamily, q.Values())
	return apiclient.DecodeResults[model.Notification](resp)
}

// UnreadCount fetches the number of unread notifications. The count sits
// under "data" as {"unread_count": n}.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, *apiclient.APIError) {
	resp := s.api.Get(ctx, notificationFamily+"unread-count/", nil)
	if resp.Err != nil {
		return 0, resp.Err
	}
	var wire struct {
		Data *struct {
			UnreadCount int `json:"unread_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil || wire.Data == nil {
		return 0, apiclient.NewDecodeError(`unread count body missing "data"`, err)
	}
	return wire.Data.UnreadCount, nil
}

// Get fetches one notification by ID.
func (s *NotificationService) Get(ctx context.Context, id int64) (model.Notification, *apiclient.APIError) {
	resp := s.api.Get(ctx, itemPath(notificationFamily, id), nil)
	return apiclient.DecodeItem[model.Notification](resp)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Post(ctx, actionPath(notificationFamily, id, "mark-read"), struct{}{})
}

// MarkUnread flags a notification as unread.
func (s *NotificationService) MarkUnread(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Post(ctx, actionPath(notificationFamily, id, "mark-unread"), struct{}{})
}

// MarkAllRead flags the whole inbox as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) *apiclient.Response {
	return s.api.Post(ctx, notificationFamily+"mark-all-read/", struct{}{})
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id int64) *apiclient.Response {
	return s.api.Delete(ctx, itemPath(notificationFamily, id))
}

// ClearAll empties the inbox.
func (s *NotificationService) ClearAll(ctx context.Context) *apiclient.Response {
	return s.api.Post(ctx, notificationFamily+"clear-all/", struct{}{})
}
