// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/venuedesk/admin-go/internal/model"
	"github.com/venuedesk/admin-go/internal/session"
)

func newTestSessions() *session.Store {
	return session.NewStore(scs.New())
}

func TestAuthRedirectsAnonymous(t *testing.T) {
	sessions := newTestSessions()
	sm := sessions.Manager()

	protected := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/banners", nil)
	rec := httptest.NewRecorder()
	sm.LoadAndSave(protected).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=/admin/banners" {
		t.Errorf("Location = %q", loc)
	}
}

func TestAuthPassesSignedIn(t *testing.T) {
	sessions := newTestSessions()
	sm := sessions.Manager()

	var cookie string
	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.SignIn(r.Context(), "jwt", "", model.AdminUser{ID: 1, Email: "ops@example.com"}, false); err != nil {
			t.Fatalf("SignIn: %v", err)
		}
	}))
	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		cookie = cookies[0].Name + "=" + cookies[0].Value
	}
	if cookie == "" {
		t.Fatal("no session cookie issued")
	}

	reached := false
	protected := Auth(sessions)(LoadUser(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if got := GetUserEmail(r); got != "ops@example.com" {
			t.Errorf("GetUserEmail = %q", got)
		}
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/banners", nil)
	req.Header.Set("Cookie", cookie)
	rec2 := httptest.NewRecorder()
	sm.LoadAndSave(protected).ServeHTTP(rec2, req)

	if !reached {
		t.Fatalf("handler not reached, status = %d", rec2.Code)
	}
}

func TestRequestPathStored(t *testing.T) {
	var got string
	h := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	if got != "/admin/users" {
		t.Errorf("GetRequestPath = %q", got)
	}
}
