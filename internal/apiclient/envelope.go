// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"encoding/json"
	"fmt"
)

// ListResult is the normalized outcome of a list fetch. It is replaced
// wholesale on every successful fetch, never merged.
type ListResult[T any] struct {
	Items      []T
	TotalCount int
	Next       string
	Previous   string
}

// TotalPages returns the number of pages for the given page size.
func (r ListResult[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (r.TotalCount + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Each resource family commits to exactly one envelope shape and decodes it
// with one of the functions below. A body that does not match the declared
// shape is a decode error, not something to be papered over by probing
// alternative wrappings.

// DecodeDataList decodes a `{"data": [...], "count": n}` list body.
func DecodeDataList[T any](resp *Response) (ListResult[T], *APIError) {
	var zero ListResult[T]
	if resp.Err != nil {
		return zero, resp.Err
	}
	var wire struct {
		Data  *[]T `json:"data"`
		Count *int `json:"count"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil {
		return zero, decodeError("malformed list body", err)
	}
	if wire.Data == nil {
		return zero, decodeError(`list body missing "data" array`, nil)
	}
	result := ListResult[T]{Items: *wire.Data, TotalCount: len(*wire.Data)}
	if wire.Count != nil {
		result.TotalCount = *wire.Count
	}
	return result, nil
}

// DecodeResults decodes a paginated `{"results": [...], "count": n, "next":
// ..., "previous": ...}` list body.
func DecodeResults[T any](resp *Response) (ListResult[T], *APIError) {
	var zero ListResult[T]
	if resp.Err != nil {
		return zero, resp.Err
	}
	var wire struct {
		Results  *[]T   `json:"results"`
		Count    *int   `json:"count"`
		Next     string `json:"next"`
		Previous string `json:"previous"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil {
		return zero, decodeError("malformed list body", err)
	}
	if wire.Results == nil {
		return zero, decodeError(`list body missing "results" array`, nil)
	}
	result := ListResult[T]{
		Items:    *wire.Results,
		Next:     wire.Next,
		Previous: wire.Previous,
	}
	result.TotalCount = len(result.Items)
	if wire.Count != nil {
		result.TotalCount = *wire.Count
	}
	return result, nil
}

// DecodeItem decodes a `{"data": {...}}` detail body.
func DecodeItem[T any](resp *Response) (T, *APIError) {
	var zero T
	if resp.Err != nil {
		return zero, resp.Err
	}
	var wire struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wire); err != nil {
		return zero, decodeError("malformed detail body", err)
	}
	if len(wire.Data) == 0 || string(wire.Data) == "null" {
		return zero, decodeError(`detail body missing "data" object`, nil)
	}
	var item T
	if err := json.Unmarshal(wire.Data, &item); err != nil {
		return zero, decodeError(fmt.Sprintf("decoding %T", item), err)
	}
	return item, nil
}
