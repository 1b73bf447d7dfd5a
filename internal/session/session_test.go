// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/venuedesk/admin-go/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create sessions table required by sqlite3store
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func loadSession(t *testing.T, sm interface {
	Load(ctx context.Context, token string) (context.Context, error)
}) context.Context {
	t.Helper()
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return ctx
}

func TestNewManager_DevMode(t *testing.T) {
	sm := NewManager(setupTestDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNewManager_ProductionMode(t *testing.T) {
	sm := NewManager(setupTestDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNewManager_SessionSettings(t *testing.T) {
	sm := NewManager(setupTestDB(t), true)

	if sm.Lifetime != RememberLifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, RememberLifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}

func TestStoreSignInRoundTrip(t *testing.T) {
	sm := NewManager(setupTestDB(t), true)
	store := NewStore(sm)
	ctx := loadSession(t, sm)

	user := model.AdminUser{ID: 1, Name: "Ops", Email: "ops@example.com"}
	if err := store.SignIn(ctx, "jwt-access", "jwt-refresh", user, false); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	if !store.SignedIn(ctx) {
		t.Fatal("expected SignedIn after SignIn")
	}
	if got := store.Token(ctx); got != "jwt-access" {
		t.Errorf("Token = %q", got)
	}
	if got := store.RefreshToken(ctx); got != "jwt-refresh" {
		t.Errorf("RefreshToken = %q", got)
	}

	stored, ok := store.User(ctx)
	if !ok {
		t.Fatal("expected stored user")
	}
	if stored.Email != "ops@example.com" {
		t.Errorf("stored user email = %q", stored.Email)
	}
}

func TestStoreClearRemovesEverything(t *testing.T) {
	sm := NewManager(setupTestDB(t), true)
	store := NewStore(sm)
	ctx := loadSession(t, sm)

	user := model.AdminUser{ID: 1, Email: "ops@example.com"}
	if err := store.SignIn(ctx, "jwt-access", "", user, false); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if store.SignedIn(ctx) {
		t.Error("expected signed out after Clear")
	}
	if _, ok := store.User(ctx); ok {
		t.Error("expected no stored user after Clear")
	}
}

func TestRememberMeExtendsDeadline(t *testing.T) {
	sm := NewManager(setupTestDB(t), true)
	store := NewStore(sm)

	ctx := loadSession(t, sm)
	if err := store.SignIn(ctx, "t", "", model.AdminUser{ID: 1}, false); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	shortDeadline := sm.Deadline(ctx)

	ctx2 := loadSession(t, sm)
	if err := store.SignIn(ctx2, "t", "", model.AdminUser{ID: 1}, true); err != nil {
		t.Fatalf("SignIn remember: %v", err)
	}
	longDeadline := sm.Deadline(ctx2)

	if !longDeadline.After(shortDeadline.Add(24 * time.Hour)) {
		t.Errorf("remembered deadline %v not well beyond default %v", longDeadline, shortDeadline)
	}
}

func TestStoreAnonymousContext(t *testing.T) {
	// Background jobs read the store through contexts that never passed
	// LoadAndSave; they must look signed out, not panic.
	sm := NewManager(setupTestDB(t), true)
	store := NewStore(sm)
	ctx := context.Background()

	if got := store.Token(ctx); got != "" {
		t.Errorf("Token = %q, want empty", got)
	}
	if got := store.RefreshToken(ctx); got != "" {
		t.Errorf("RefreshToken = %q, want empty", got)
	}
	if _, ok := store.User(ctx); ok {
		t.Error("expected no user on a session-less context")
	}
	if store.SignedIn(ctx) {
		t.Error("expected signed out on a session-less context")
	}
	if err := store.Clear(ctx); err != nil {
		t.Errorf("Clear on a session-less context: %v", err)
	}
}

func TestSetUserReplacesRecord(t *testing.T) {
	sm := NewManager(setupTestDB(t), true)
	store := NewStore(sm)
	ctx := loadSession(t, sm)

	if err := store.SignIn(ctx, "t", "", model.AdminUser{ID: 1, Name: "Before"}, false); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	store.SetUser(ctx, model.AdminUser{ID: 1, Name: "After"})

	user, ok := store.User(ctx)
	if !ok || user.Name != "After" {
		t.Errorf("User = %+v ok=%v", user, ok)
	}
}
