// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import "fmt"

// Kind classifies a failed backend call.
type Kind int

const (
	// KindNetwork covers transport-level failures: DNS, refused connections,
	// timeouts, a body that could not be read.
	KindNetwork Kind = iota
	// KindAuthExpired is a 401 from any endpoint. The session is torn down as
	// a side effect; callers still receive a normal error value.
	KindAuthExpired
	// KindNotFound is a 404 served as an HTML error page.
	KindNotFound
	// KindUnexpectedHTML is any other HTML response. Infrastructure error
	// pages must never be confused with structured API errors.
	KindUnexpectedHTML
	// KindAPI is a structured JSON error with a non-2xx status.
	KindAPI
	// KindDecode is a 2xx response whose body did not match the expected
	// envelope shape.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuthExpired:
		return "auth-expired"
	case KindNotFound:
		return "not-found"
	case KindUnexpectedHTML:
		return "unexpected-html"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the classified error carried by every failed Response.
type APIError struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Message string // user-presentable message
	cause   error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error { return e.cause }

func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "network error occurred", cause: err}
}

func decodeError(msg string, err error) *APIError {
	return &APIError{Kind: KindDecode, Message: msg, cause: err}
}

// NewDecodeError builds a decode-kind error for callers that parse envelope
// shapes outside this package.
func NewDecodeError(msg string, err error) *APIError {
	return decodeError(msg, err)
}
