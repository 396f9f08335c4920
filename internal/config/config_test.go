// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

const validToken = "0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NAVKIT_ADMIN_TOKEN", validToken)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "./data/navkit.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env not development")
	}
	if cfg.UseRedisCache() {
		t.Error("redis enabled without a URL")
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL())
	}
	if cfg.MaxPanelItems != 20 {
		t.Errorf("MaxPanelItems = %d", cfg.MaxPanelItems)
	}
	if cfg.ConfigRatePerMinute != 60 || cfg.PanelRatePerMinute != 120 {
		t.Errorf("rate limits = %d, %d", cfg.ConfigRatePerMinute, cfg.PanelRatePerMinute)
	}
	if cfg.EventRetentionDays != 90 {
		t.Errorf("EventRetentionDays = %d", cfg.EventRetentionDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NAVKIT_ADMIN_TOKEN", validToken)
	t.Setenv("NAVKIT_SERVER_HOST", "0.0.0.0")
	t.Setenv("NAVKIT_SERVER_PORT", "9090")
	t.Setenv("NAVKIT_ENV", "production")
	t.Setenv("NAVKIT_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("NAVKIT_CACHE_MINUTES", "10")
	t.Setenv("NAVKIT_MAX_PANEL_ITEMS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr() != "0.0.0.0:9090" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if !cfg.UseRedisCache() {
		t.Error("redis URL not honored")
	}
	if cfg.CacheTTL() != 10*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL())
	}
	if cfg.MaxPanelItems != 12 {
		t.Errorf("MaxPanelItems = %d", cfg.MaxPanelItems)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("NAVKIT_ADMIN_TOKEN", "short")
	if _, err := Load(); err == nil {
		t.Error("short admin token accepted")
	}

	t.Setenv("NAVKIT_ADMIN_TOKEN", validToken)
	t.Setenv("NAVKIT_MAX_PANEL_ITEMS", "0")
	if _, err := Load(); err == nil {
		t.Error("zero max panel items accepted")
	}
}
