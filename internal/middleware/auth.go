// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and request
// context handling.
package middleware

import (
	"context"
	"net/http"

	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyRequestPath ContextKey = "request_path"
)

// Auth requires a signed-in operator. Requests without a backend token are
// redirected to the login screen with the original path as the return target.
func Auth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.SignedIn(r.Context()) {
				target := "/login"
				if r.URL.Path != "/" && r.Method == http.MethodGet {
					target += "?next=" + r.URL.Path
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser puts the stored operator record into the request context. Use
// after Auth; a session with a token but no decodable user record is treated
// as broken and torn down.
func LoadUser(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.SignedIn(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			user, ok := sessions.User(r.Context())
			if !ok {
				_ = sessions.Clear(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the operator from the request context, nil when absent.
func GetUser(r *http.Request) *model.AdminUser {
	user, ok := r.Context().Value(ContextKeyUser).(model.AdminUser)
	if !ok {
		return nil
	}
	return &user
}

// GetUserEmail returns the operator's email, empty when not signed in.
func GetUserEmail(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.Email
	}
	return ""
}

// RequestPath stores the request path in the context for the logging handler.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}
