// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify polls the backend for the unread notification count on a
// cron schedule and keeps the latest snapshot in the cache for the layout
// badge. There is no push channel; polling is the delivery mechanism.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/cache"
	"github.com/venuedesk/admin-go/internal/model"
)

const snapshotKey = "notifications:unread"

// CountSource fetches the current unread count from the backend.
type CountSource interface {
	UnreadCount(ctx context.Context) (int, *apiclient.APIError)
}

// Poller refreshes the unread-count snapshot on a schedule.
type Poller struct {
	source   CountSource
	snapshot *cache.Typed[model.UnreadCount]
	cron     *cron.Cron
	logger   *slog.Logger
	spec     string
}

// New creates a poller. spec is a standard five-field cron expression.
func New(source CountSource, c cache.Cache, spec string, logger *slog.Logger) *Poller {
	return &Poller{
		source:   source,
		snapshot: cache.NewTyped[model.UnreadCount](c, 0),
		cron:     cron.New(),
		logger:   logger,
		spec:     spec,
	}
}

// Start registers the cron job and runs one immediate refresh so the badge is
// populated before the first tick.
func (p *Poller) Start(ctx context.Context) error {
	if _, err := p.cron.AddFunc(p.spec, func() { p.refresh(context.Background()) }); err != nil {
		return err
	}
	p.refresh(ctx)
	p.cron.Start()
	p.logger.Info("notification poller started", "spec", p.spec)
	return nil
}

// Stop waits for a running refresh to finish.
func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info("notification poller stopped")
}

// Unread returns the latest snapshot. The second value is false when no
// snapshot has been taken yet.
func (p *Poller) Unread(ctx context.Context) (model.UnreadCount, bool) {
	return p.snapshot.Get(ctx, snapshotKey)
}

// refresh fetches the count and stores it. A failed fetch keeps the previous
// snapshot; a stale badge beats a missing one.
func (p *Poller) refresh(ctx context.Context) {
	count, err := p.source.UnreadCount(ctx)
	if err != nil {
		// Cron ticks carry no operator session; a 401 just means no one is
		// signed in right now.
		if err.Kind == apiclient.KindAuthExpired {
			p.logger.Debug("unread count refresh skipped, no active session")
			return
		}
		p.logger.Warn("unread count refresh failed", "error", err.Message, "kind", err.Kind.String())
		return
	}
	snap := model.UnreadCount{
		Count:     count,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.snapshot.Set(ctx, snapshotKey, snap); err != nil {
		p.logger.Warn("unread count snapshot store failed", "error", err)
	}
}
