// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/render"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST/PUT/DELETE redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "error")
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "success")
}

// parseFormOrRedirect parses the request form and redirects with an error message on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// requireRemote fetches a backend entity using the provided fetch function.
// On error it sets a flash message and redirects to listURL. Returns the
// entity and true on success, or zero value and false after redirecting.
// Expired sessions redirect to the login page instead; the client's expiry
// hook has already cleared the session by the time we see the error.
func requireRemote[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	listURL string,
	entityName string,
	fetchFn func() (T, *apiclient.APIError),
) (T, bool) {
	var zero T
	entity, err := fetchFn()
	if err == nil {
		return entity, true
	}
	switch err.Kind {
	case apiclient.KindAuthExpired:
		flashError(w, r, renderer, redirectLogin, "Your session has expired, please sign in again")
	case apiclient.KindNotFound:
		flashError(w, r, renderer, listURL, entityName+" not found")
	default:
		slog.Error("failed to load "+entityName, "error", err.Message, "kind", err.Kind.String())
		flashError(w, r, renderer, listURL, "Error loading "+entityName)
	}
	return zero, false
}

// redirectIfAuthExpired redirects to login when the backend rejected our
// token. Returns true if a redirect was written.
func redirectIfAuthExpired(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, err *apiclient.APIError) bool {
	if err == nil || err.Kind != apiclient.KindAuthExpired {
		return false
	}
	flashError(w, r, renderer, redirectLogin, "Your session has expired, please sign in again")
	return true
}

// failMessage picks the most specific message out of a failed backend
// response, falling back to the given default.
func failMessage(resp *apiclient.Response, fallback string) string {
	if resp.Message != "" {
		return resp.Message
	}
	if resp.Err != nil && resp.Err.Message != "" && resp.Err.Kind == apiclient.KindAPI {
		return resp.Err.Message
	}
	return fallback
}
