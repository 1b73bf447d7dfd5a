// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session keeps the operator's login state: the backend bearer token
// and a copy of the admin user record. The cookie is the scs session cookie;
// the durable half lives in the local SQLite store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/venuedesk/admin-go/internal/model"
)

// Session keys.
const (
	keyToken   = "backend_token"
	keyRefresh = "backend_refresh"
	keyUser    = "admin_user"
)

// Lifetimes. A remembered session survives browser restarts for a month;
// the default expires within a day.
const (
	DefaultLifetime  = 24 * time.Hour
	RememberLifetime = 30 * 24 * time.Hour
)

// NewManager creates a session manager backed by the local SQLite store.
func NewManager(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = RememberLifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}

	return sm
}

// Store wraps the session manager with typed access to the login state.
type Store struct {
	sm *scs.SessionManager
}

// NewStore wraps a session manager.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// Manager exposes the underlying scs manager for middleware wiring.
func (s *Store) Manager() *scs.SessionManager { return s.sm }

// SignIn stores the token pair and user record. The session token is renewed
// to prevent fixation. With remember unset the session expires after
// DefaultLifetime regardless of the manager-wide cap.
func (s *Store) SignIn(ctx context.Context, token, refresh string, user model.AdminUser, remember bool) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return err
	}
	s.sm.Put(ctx, keyToken, token)
	if refresh != "" {
		s.sm.Put(ctx, keyRefresh, refresh)
	}
	if raw, err := json.Marshal(user); err == nil {
		s.sm.Put(ctx, keyUser, string(raw))
	}
	s.sm.SetDeadline(ctx, sessionDeadline(remember))
	s.sm.RememberMe(ctx, remember)
	return nil
}

func sessionDeadline(remember bool) time.Time {
	if remember {
		return time.Now().Add(RememberLifetime)
	}
	return time.Now().Add(DefaultLifetime)
}

// lookup reads one session string. A context without session data reads as
// anonymous: background work such as the notification poller runs outside
// LoadAndSave, where scs accessors would otherwise panic.
func (s *Store) lookup(ctx context.Context, key string) (val string) {
	defer func() {
		if recover() != nil {
			val = ""
		}
	}()
	return s.sm.GetString(ctx, key)
}

// Token returns the backend bearer token, empty when signed out.
func (s *Store) Token(ctx context.Context) string {
	return s.lookup(ctx, keyToken)
}

// RefreshToken returns the backend refresh token, if one was issued.
func (s *Store) RefreshToken(ctx context.Context) string {
	return s.lookup(ctx, keyRefresh)
}

// User returns the stored admin user record. The second value is false when
// no one is signed in or the stored record cannot be decoded.
func (s *Store) User(ctx context.Context) (model.AdminUser, bool) {
	raw := s.lookup(ctx, keyUser)
	if raw == "" {
		return model.AdminUser{}, false
	}
	var user model.AdminUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.AdminUser{}, false
	}
	return user, true
}

// SetUser replaces the stored admin user record, e.g. after a profile update.
func (s *Store) SetUser(ctx context.Context, user model.AdminUser) {
	if raw, err := json.Marshal(user); err == nil {
		s.sm.Put(ctx, keyUser, string(raw))
	}
}

// SignedIn reports whether a bearer token is present.
func (s *Store) SignedIn(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Clear destroys the session. Used on logout and whenever the backend
// answers 401. A context without session data is already signed out, so
// clearing it is a no-op rather than a panic.
func (s *Store) Clear(ctx context.Context) (err error) {
	defer func() {
		if recover() != nil {
			err = nil
		}
	}()
	return s.sm.Destroy(ctx)
}
