// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestNewSelectsBackend(t *testing.T) {
	c, err := New(Options{DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("New(memory): %v", err)
	}
	defer func() { _ = c.Close() }()
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("backend = %T, want *MemoryCache", c)
	}

	srv := miniredis.RunT(t)
	r, err := New(Options{RedisURL: "redis://" + srv.Addr(), Prefix: "t:", DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("New(redis): %v", err)
	}
	defer func() { _ = r.Close() }()
	if _, ok := r.(*RedisCache); !ok {
		t.Errorf("backend = %T, want *RedisCache", r)
	}
}

func TestNewBadRedisURL(t *testing.T) {
	if _, err := New(Options{RedisURL: "redis://127.0.0.1:1"}); err == nil {
		t.Error("unreachable redis did not error")
	}
}
