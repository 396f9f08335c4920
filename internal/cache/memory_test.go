// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheBasicOps(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = %q, %v", got, err)
	}

	has, err := c.Has(ctx, "k")
	if err != nil || !has {
		t.Errorf("Has(k) = %v, %v", has, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after delete = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired Get = %v, want ErrCacheMiss", err)
	}
	if has, _ := c.Has(ctx, "short"); has {
		t.Error("Has reports an expired key")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, k); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("Get(%q) after clear = %v, want ErrCacheMiss", k, err)
		}
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	_ = c.Close()

	ctx := context.Background()
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get on closed = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set on closed = %v, want ErrCacheClosed", err)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "nope")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Items != 1 {
		t.Errorf("items = %d, want 1", stats.Items)
	}

	c.ResetStats()
	if got := c.Stats(); got.Hits != 0 || got.Misses != 0 {
		t.Errorf("stats after reset = %+v", got)
	}
}
