// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/venuedesk/admin-go/internal/session"
	"github.com/venuedesk/admin-go/internal/version"
)

// HealthHandler answers liveness and readiness probes. The dashboard is
// healthy when its local session database responds; the remote backend being
// down only degrades list screens, it does not fail the probe.
type HealthHandler struct {
	db        *sql.DB
	sessions  *session.Store
	info      *version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, sessions *session.Store, info *version.Info) *HealthHandler {
	return &HealthHandler{
		db:        db,
		sessions:  sessions,
		info:      info,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal response for unauthenticated callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed response for signed-in operators.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   string    `json:"version"`
}

// Health handles GET /health. Signed-in callers get uptime and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if err := h.pingDB(r.Context()); err != nil {
		status = "degraded"
	}

	w.Header().Set(HeaderContentType, "application/json")
	if status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if h.sessions == nil || !h.sessions.SignedIn(r.Context()) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: status})
		return
	}

	_ = json.NewEncoder(w).Encode(HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.info.Version,
	})
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderContentType, "application/json")
	_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: "alive"})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(HeaderContentType, "application/json")
	if err := h.pingDB(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: "not ready"})
		return
	}
	_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: "ready"})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.db.PingContext(ctx)
}
