// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
)

const testSecret = "qK8mTz4vR1nP7wXa2bYc9dEf3gHj5kLm"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VADMIN_BACKEND_URL", "https://api.example.com")
	t.Setenv("VADMIN_SESSION_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.CacheTTL != 3600 {
		t.Errorf("CacheTTL = %d, want 3600", cfg.CacheTTL)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true with no redis URL")
	}
}

func TestLoad_MissingBackendURL(t *testing.T) {
	t.Setenv("VADMIN_BACKEND_URL", "")
	t.Setenv("VADMIN_SESSION_SECRET", testSecret)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing backend URL")
	}
}

func TestLoad_RelativeBackendURL(t *testing.T) {
	t.Setenv("VADMIN_BACKEND_URL", "/api/only/a/path")
	t.Setenv("VADMIN_SESSION_SECRET", testSecret)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for relative backend URL")
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("VADMIN_BACKEND_URL", "https://api.example.com/")
	t.Setenv("VADMIN_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendBaseURL != "https://api.example.com" {
		t.Errorf("BackendBaseURL = %q, want trailing slash removed", cfg.BackendBaseURL)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("VADMIN_BACKEND_URL", "https://api.example.com")
	t.Setenv("VADMIN_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	t.Setenv("VADMIN_BACKEND_URL", "https://api.example.com")
	t.Setenv("VADMIN_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for known weak secret")
	}
}

func TestServerAddr(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VADMIN_SERVER_HOST", "0.0.0.0")
	t.Setenv("VADMIN_SERVER_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr() = %q, want 0.0.0.0:9000", got)
	}
}
