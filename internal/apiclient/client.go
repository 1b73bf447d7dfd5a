// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient is the single gateway to the remote marketplace backend.
// It builds authorized requests, guards against HTML error pages served in
// place of JSON, and normalizes every outcome into a Response so that callers
// never branch on raw HTTP status codes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token for the current session.
// An empty token means the request goes out anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func(ctx context.Context) string

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }

// Response is the uniform envelope every call resolves to. Callers branch on
// Success and read Body/Message; they must not inspect HTTP status directly.
type Response struct {
	Success bool
	Status  int
	Body    json.RawMessage // full JSON body on success
	Message string          // server-provided message, if any
	Err     *APIError       // set iff Success is false
}

// Client issues authorized HTTP calls against the backend. The token source
// is injected at construction so tests can run multiple sessions side by
// side; there is no ambient global session state.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthExpired func(ctx context.Context)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuthExpiredHook registers a callback invoked on every 401 response,
// before the classified error is returned. Used to tear down the session.
func WithAuthExpiredHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// New creates a Client for the given backend origin.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request. Query values that are empty are dropped.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) *Response {
	return c.do(ctx, http.MethodGet, endpoint, nil, query)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) *Response {
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// Put issues a PUT request with a full record.
func (c *Client) Put(ctx context.Context, endpoint string, body any) *Response {
	return c.do(ctx, http.MethodPut, endpoint, body, nil)
}

// Patch issues a PATCH request with a partial record.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) *Response {
	return c.do(ctx, http.MethodPatch, endpoint, body, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) *Response {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func fail(err *APIError) *Response {
	return &Response{Success: false, Status: err.Status, Message: err.Message, Err: err}
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, query url.Values) *Response {
	u := c.baseURL + endpoint
	if qs := encodeQuery(query); qs != "" {
		u += "?" + qs
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(decodeError("encoding request body", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fail(networkError(err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	return c.send(ctx, req)
}

// authorize attaches the bearer token when one is present. An absent token is
// not an error; the request simply goes out anonymous.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// send executes the request and normalizes the outcome. Transport failures,
// HTML bodies and non-2xx statuses all land in Response.Err; nothing escapes
// as a panic or a bare error.
func (c *Client) send(ctx context.Context, req *http.Request) *Response {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("backend request failed", "method", req.Method, "url", req.URL.Path, "error", err)
		return fail(networkError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(networkError(err))
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		return fail(c.classifyHTML(ctx, resp.StatusCode))
	}

	var wire struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	// Tolerate an empty body (204 and some DELETE responses).
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &wire); err != nil {
			return fail(&APIError{
				Kind:    KindDecode,
				Status:  resp.StatusCode,
				Message: "server returned malformed JSON",
				cause:   err,
			})
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(ctx)
		return fail(&APIError{
			Kind:    KindAuthExpired,
			Status:  resp.StatusCode,
			Message: "session expired, please login again",
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := firstNonEmpty(wire.Message, wire.Detail, wire.Error)
		if msg == "" {
			msg = "unexpected status " + resp.Status
		}
		return fail(&APIError{Kind: KindAPI, Status: resp.StatusCode, Message: msg})
	}

	return &Response{
		Success: true,
		Status:  resp.StatusCode,
		Body:    raw,
		Message: wire.Message,
	}
}

// classifyHTML turns an HTML response into a classified error without ever
// attempting to parse the body as JSON.
func (c *Client) classifyHTML(ctx context.Context, status int) *APIError {
	switch status {
	case http.StatusUnauthorized:
		c.expireSession(ctx)
		return &APIError{Kind: KindAuthExpired, Status: status, Message: "authentication failed, please login again"}
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: status, Message: "endpoint not found"}
	default:
		return &APIError{Kind: KindUnexpectedHTML, Status: status, Message: "server returned HTML instead of JSON"}
	}
}

func (c *Client) expireSession(ctx context.Context) {
	if c.onAuthExpired != nil {
		c.onAuthExpired(ctx)
	}
}

// isHTML reports whether the Content-Type header denotes an HTML document.
func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "text/html")
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// encodeQuery serializes query parameters, dropping nil/empty values so that
// cleared filters never reach the backend.
func encodeQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	filtered := make(url.Values, len(query))
	for key, values := range query {
		for _, v := range values {
			if v != "" {
				filtered.Add(key, v)
			}
		}
	}
	return filtered.Encode()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
