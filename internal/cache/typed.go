// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Typed wraps a Cache with JSON serialization for a concrete value type.
// The degraded-mode list snapshots and the notification poller both use it.
type Typed[T any] struct {
	cache      Cache
	defaultTTL time.Duration
}

// NewTyped creates a typed view over the given cache.
func NewTyped[T any](c Cache, defaultTTL time.Duration) *Typed[T] {
	return &Typed[T]{cache: c, defaultTTL: defaultTTL}
}

// Get retrieves and decodes a value. Returns false on miss or decode failure;
// a corrupt snapshot is treated the same as no snapshot.
func (c *Typed[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return zero, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, false
	}
	return value, true
}

// Set encodes and stores a value with the default TTL.
func (c *Typed[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, key, data, c.defaultTTL)
}

// Delete removes a key.
func (c *Typed[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}
