// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"time"
)

// Options holds configuration for cache creation.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory backend
	// (0 = unlimited).
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup in the
	// memory backend.
	CleanupInterval time.Duration
}

// DefaultOptions returns the default cache configuration.
func DefaultOptions() Options {
	return Options{
		DefaultTTL:      5 * time.Minute,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// New creates a cache backend from the provided options: Redis when a
// URL is configured, in-memory otherwise.
func New(opts Options) (Cacher, error) {
	if opts.RedisURL != "" {
		c, err := NewRedisCacheFromURL(opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis cache: %w", err)
		}
		return c, nil
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: opts.CleanupInterval,
	}), nil
}
