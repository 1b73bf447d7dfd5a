// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/cache"
	"github.com/venuedesk/admin-go/internal/config"
	"github.com/venuedesk/admin-go/internal/render"
	"github.com/venuedesk/admin-go/internal/resource"
	"github.com/venuedesk/admin-go/internal/session"
	"github.com/venuedesk/admin-go/internal/store"
)

// fakeBackend records requests and plays back canned JSON per path prefix.
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]string // path -> body
	statuses  map[string]int
	requests  []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		responses: make(map[string]string),
		statuses:  make(map[string]int),
	}
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0)
		if r.Body != nil {
			buf := new(strings.Builder)
			_, _ = copyBody(buf, r)
			body = []byte(buf.String())
		}
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		resp, ok := f.responses[r.URL.Path]
		status := f.statuses[r.URL.Path]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	})
}

func copyBody(dst *strings.Builder, r *http.Request) (int64, error) {
	buf := make([]byte, 4096)
	var total int64
	for {
		n, err := r.Body.Read(buf)
		dst.Write(buf[:n])
		total += int64(n)
		if err != nil {
			return total, nil
		}
	}
}

func (f *fakeBackend) lastRequest() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return recordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeBackend) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestRouter() chi.Router {
	return chi.NewRouter()
}

func handlerTestTemplates() fstest.MapFS {
	page := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "page"}}` + body + `{{end}}`)}
	}
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{if .Flash}}[{{.FlashType}}] {{.Flash}}{{end}}{{template "content" .}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}{{if .Degraded}}DEGRADED {{end}}{{template "page" .}}{{end}}`),
		},
		"admin/banners_list.html":   page(`{{range .Data.State.Items}}banner:{{.Title}};{{end}}pending={{.Data.Stats.TotalPending}}`),
		"admin/banners_detail.html": page(`{{.Data.Detail.Title}}`),
		"admin/users_list.html":     page(`{{range .Data.State.Items}}user:{{.Name}};{{end}}`),
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}login{{end}}`),
		},
	}
}

type testEnv struct {
	backend *fakeBackend
	deps    Deps
	sm      *scs.SessionManager
	db      *sql.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	sm := scs.New()
	sessions := session.NewStore(sm)

	api := apiclient.New(srv.URL, apiclient.TokenFunc(func(context.Context) string { return "test-token" }))
	renderer, err := render.New(render.Config{TemplatesFS: handlerTestTemplates(), SessionManager: sm, IsDev: true})
	require.NoError(t, err)

	mem := cache.NewMemoryCache(cache.MemoryOptions{})
	t.Cleanup(func() { _ = mem.Close() })

	deps := Deps{
		Cfg:      &config.Config{MaxUploadBytes: 10 << 20, MaxImageWidth: 2560},
		Renderer: renderer,
		Sessions: sessions,
		Services: resource.NewServices(api),
		Cache:    mem,
		Events:   store.NewEvents(db),
	}
	return &testEnv{backend: backend, deps: deps, sm: sm, db: db}
}

// do runs a handler inside the session middleware, the way it is mounted.
func (e *testEnv) do(h http.HandlerFunc, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.sm.LoadAndSave(h).ServeHTTP(rec, req)
	return rec
}

func TestBannersListRendersItemsAndStats(t *testing.T) {
	env := newTestEnv(t)
	env.backend.responses["/api/dashboard/admin/banners/all"] = `{
		"data": {
			"banners": [
				{"id": 1, "title": "Summer rooftop", "approval_status": "pending"},
				{"id": 2, "title": "Winter lounge", "approval_status": "approved"}
			],
			"statistics": {"total_pending": 4, "total_approved": 10, "total_rejected": 1}
		},
		"count": 2
	}`

	h := NewBannersHandler(env.deps)
	router := newTestRouter()
	router.Get("/admin/banners", h.List)

	rec := env.do(router.ServeHTTP, http.MethodGet, "/admin/banners", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "banner:Summer rooftop;")
	assert.Contains(t, body, "banner:Winter lounge;")
	assert.Contains(t, body, "pending=4")
	assert.NotContains(t, body, "DEGRADED")
}

func TestBannersListDegradedAfterBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.backend.responses["/api/dashboard/admin/banners/all"] = `{
		"data": {"banners": [{"id": 1, "title": "Summer rooftop"}], "statistics": {}},
		"count": 1
	}`

	h := NewBannersHandler(env.deps)
	router := newTestRouter()
	router.Get("/admin/banners", h.List)

	rec := env.do(router.ServeHTTP, http.MethodGet, "/admin/banners", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Backend goes away; the cached snapshot keeps the screen readable.
	env.backend.mu.Lock()
	env.backend.statuses["/api/dashboard/admin/banners/all"] = http.StatusBadGateway
	env.backend.responses["/api/dashboard/admin/banners/all"] = `{"message":"upstream down"}`
	env.backend.mu.Unlock()

	rec = env.do(router.ServeHTTP, http.MethodGet, "/admin/banners", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DEGRADED")
	assert.Contains(t, rec.Body.String(), "banner:Summer rooftop;")
}

func TestBannerApprovePostsAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.backend.responses["/api/dashboard/admin/banners/7/approve/"] = `{"message":"approved"}`
	env.backend.responses["/api/dashboard/admin/banners/all"] = `{"data":{"banners":[],"statistics":{}},"count":0}`

	h := NewBannersHandler(env.deps)
	router := newTestRouter()
	router.Post("/admin/banners/{id}/approve", h.Approve)

	rec := env.do(router.ServeHTTP, http.MethodPost, "/admin/banners/7/approve", url.Values{})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectAdminBanners, rec.Header().Get("Location"))

	// The audit trail records the verb.
	var count int
	require.NoError(t, env.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE resource = 'banner' AND resource_id = 7`,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBannerRejectWithoutReasonNeverHitsBackend(t *testing.T) {
	env := newTestEnv(t)

	h := NewBannersHandler(env.deps)
	router := newTestRouter()
	router.Post("/admin/banners/{id}/reject", h.Reject)

	rec := env.do(router.ServeHTTP, http.MethodPost, "/admin/banners/9/reject", url.Values{"reason": {"   "}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, env.backend.requestCount(), "validation must precede any network call")
}

func TestUserActionUnknownVerbRejected(t *testing.T) {
	env := newTestEnv(t)

	h := NewUsersHandler(env.deps)
	router := newTestRouter()
	router.Post("/admin/users/{id}/action", h.Action)

	rec := env.do(router.ServeHTTP, http.MethodPost, "/admin/users/3/action", url.Values{"verb": {"promote"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, env.backend.requestCount())
}

func TestUserBlockSendsVerbAndReason(t *testing.T) {
	env := newTestEnv(t)
	env.backend.responses["/api/dashboard/admin/users/3/action/"] = `{"message":"ok"}`
	env.backend.responses["/api/dashboard/admin/users/"] = `{"results":[],"count":0}`

	h := NewUsersHandler(env.deps)
	router := newTestRouter()
	router.Post("/admin/users/{id}/action", h.Action)

	rec := env.do(router.ServeHTTP, http.MethodPost, "/admin/users/3/action",
		url.Values{"verb": {"block"}, "reason": {"Spam listings"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)

	env.backend.mu.Lock()
	var actionReq recordedRequest
	for _, req := range env.backend.requests {
		if strings.HasSuffix(req.Path, "/action/") {
			actionReq = req
		}
	}
	env.backend.mu.Unlock()
	assert.Equal(t, http.MethodPost, actionReq.Method)
	assert.Contains(t, actionReq.Body, `"action":"block"`)
	assert.Contains(t, actionReq.Body, `"reason":"Spam listings"`)
}

func TestLoginSuccessRedirectsToDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.backend.responses["/api/accounts/login/"] = `{
		"data": {
			"access": "acc-token",
			"refresh": "ref-token",
			"user": {"id": 1, "name": "Ada", "email": "ada@example.com", "role": "admin"}
		}
	}`

	h := NewAuthHandler(env.deps)
	rec := env.do(h.Login, http.MethodPost, "/login",
		url.Values{"email": {"ada@example.com"}, "password": {"s3cret!pw"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectAdmin, rec.Header().Get("Location"))

	var count int
	require.NoError(t, env.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE category = 'auth' AND message = 'Admin signed in'`,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoginFailureFlashesBackendMessage(t *testing.T) {
	env := newTestEnv(t)
	env.backend.responses["/api/accounts/login/"] = `{"message":"Invalid credentials"}`
	env.backend.statuses["/api/accounts/login/"] = http.StatusBadRequest

	h := NewAuthHandler(env.deps)
	rec := env.do(h.Login, http.MethodPost, "/login",
		url.Values{"email": {"ada@example.com"}, "password": {"wrong"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectLogin, rec.Header().Get("Location"))
}
