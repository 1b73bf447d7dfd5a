// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// Upload sends a multipart/form-data request carrying one file plus optional
// form fields. The Content-Type header is left to the multipart writer so the
// boundary is set correctly; it is never forced to application/json.
func (c *Client) Upload(ctx context.Context, method, endpoint, fileField, filename string, file io.Reader, fields map[string]string) *Response {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return fail(networkError(err))
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return fail(networkError(err))
	}
	if _, err := io.Copy(part, file); err != nil {
		return fail(networkError(err))
	}
	if err := writer.Close(); err != nil {
		return fail(networkError(err))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, &buf)
	if err != nil {
		return fail(networkError(err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.authorize(ctx, req)

	return c.send(ctx, req)
}
