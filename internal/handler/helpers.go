// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/venuedesk/admin-go/internal/confirm"
	"github.com/venuedesk/admin-go/internal/listing"
)

// idParam extracts the {id} URL parameter as int64.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// listQuery builds a backend list query from the request's query string.
// Recognized filter keys are forwarded verbatim; everything else is dropped
// so a crafted URL cannot inject arbitrary backend parameters.
func listQuery(r *http.Request, filterKeys ...string) listing.Query {
	q := listing.NewQuery(listing.DefaultPageSize)

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	q.Search = r.URL.Query().Get("search")
	q.Sort = r.URL.Query().Get("sort")
	for _, key := range filterKeys {
		if v := r.URL.Query().Get(key); v != "" {
			q.Filters[key] = v
		}
	}
	return q
}

// runConfirmed drives the confirmation flow for a moderation action: the
// reason requirement is validated before any network call, and a backend
// rejection comes back as the message to show the operator.
func runConfirmed(ctx context.Context, action confirm.Action, reason string, do confirm.SubmitFunc) (ok bool, errMsg string) {
	flow := confirm.New()
	flow.Open(action)
	if flow.Submit(ctx, reason, do) {
		return true, ""
	}
	return false, flow.ErrMessage()
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

// clientIP extracts the client IP for audit logging.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// pastTense turns a moderation verb into the flash message form.
func pastTense(verb string) string {
	switch {
	case verb == "":
		return "updated"
	case strings.HasSuffix(verb, "e"):
		return verb + "d"
	case strings.HasSuffix(verb, "y"):
		return verb[:len(verb)-1] + "ied"
	default:
		return verb + "ed"
	}
}
