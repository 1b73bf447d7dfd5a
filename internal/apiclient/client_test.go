// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) string { return token })
}

func TestGet_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-123"))
	resp := c.Get(context.Background(), "/api/dashboard/admin/banners/all", nil)

	require.True(t, resp.Success)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestGet_AnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	resp := c.Get(context.Background(), "/api/core/faqs/", nil)

	require.True(t, resp.Success)
	assert.False(t, hasAuth, "anonymous request must not carry an Authorization header, got %q", gotAuth)
}

func TestGet_DropsEmptyQueryValues(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	query := url.Values{}
	query.Set("status", "pending")
	query.Set("search", "")
	query.Set("page", "2")

	c := New(srv.URL, staticToken("t"))
	c.Get(context.Background(), "/api/dashboard/admin/banners/all", query)

	assert.Equal(t, "pending", gotQuery.Get("status"))
	assert.Equal(t, "2", gotQuery.Get("page"))
	_, present := gotQuery["search"]
	assert.False(t, present, "empty search must not be serialized")
}

func TestSend_HTMLClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind Kind
	}{
		{"unauthorized", http.StatusUnauthorized, KindAuthExpired},
		{"not found", http.StatusNotFound, KindNotFound},
		{"gateway error page", http.StatusBadGateway, KindUnexpectedHTML},
		{"html with 200", http.StatusOK, KindUnexpectedHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("<html><body>error</body></html>"))
			}))
			defer srv.Close()

			c := New(srv.URL, staticToken("t"))
			resp := c.Get(context.Background(), "/api/x", nil)

			require.False(t, resp.Success)
			require.NotNil(t, resp.Err)
			assert.Equal(t, tt.wantKind, resp.Err.Kind)
		})
	}
}

func TestSend_AuthExpiredHookFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "token invalid"}`))
	}))
	defer srv.Close()

	var hookCalls int
	c := New(srv.URL, staticToken("stale"), WithAuthExpiredHook(func(context.Context) {
		hookCalls++
	}))
	resp := c.Get(context.Background(), "/api/x", nil)

	require.False(t, resp.Success)
	assert.Equal(t, KindAuthExpired, resp.Err.Kind)
	assert.Equal(t, 1, hookCalls)
}

func TestSend_StructuredAPIErrorMessagePassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "banner already approved"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	resp := c.Post(context.Background(), "/api/dashboard/admin/banners/7/approve/", nil)

	require.False(t, resp.Success)
	assert.Equal(t, KindAPI, resp.Err.Kind)
	assert.Equal(t, "banner already approved", resp.Err.Message)
}

func TestSend_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, staticToken("t"))
	resp := c.Get(context.Background(), "/api/x", nil)

	require.False(t, resp.Success)
	assert.Equal(t, KindNetwork, resp.Err.Kind)
}

func TestSend_EmptyBodyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	resp := c.Delete(context.Background(), "/api/core/faqs/3/")

	assert.True(t, resp.Success)
}

func TestUpload_MultipartWithoutJSONContentType(t *testing.T) {
	var gotContentType string
	var gotField, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotField = r.FormValue("title")
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		gotFile = header.Filename
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "uploaded"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	resp := c.Upload(context.Background(), http.MethodPost, "/api/dashboard/admin/banners/",
		"image", "summer.png", strings.NewReader("png-bytes"), map[string]string{"title": "Summer Sale", "alt": ""})

	require.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="), "got %q", gotContentType)
	assert.Equal(t, "Summer Sale", gotField)
	assert.Equal(t, "summer.png", gotFile)
}
