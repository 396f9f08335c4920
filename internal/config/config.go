// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"NAVKIT_DB_PATH" envDefault:"./data/navkit.db"`
	ServerHost string `env:"NAVKIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"NAVKIT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"NAVKIT_ENV" envDefault:"development"`
	LogLevel   string `env:"NAVKIT_LOG_LEVEL" envDefault:"info"`

	// AdminToken authorizes the import/export/preset endpoints.
	AdminToken string `env:"NAVKIT_ADMIN_TOKEN,required"`

	// Cache configuration
	RedisURL     string `env:"NAVKIT_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"NAVKIT_CACHE_PREFIX" envDefault:"navkit:"` // Redis key prefix
	CacheMinutes int    `env:"NAVKIT_CACHE_MINUTES" envDefault:"5"`      // TTL for document and panel caches
	CacheMaxSize int    `env:"NAVKIT_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// MaxPanelItems is the configured ceiling on panel feed limits. The
	// server additionally enforces its own hard cap.
	MaxPanelItems int `env:"NAVKIT_MAX_PANEL_ITEMS" envDefault:"20"`

	// FallbackJSON is the global navigation document used when no stored
	// profile is active.
	FallbackJSON string `env:"NAVKIT_FALLBACK_JSON"`

	// Rate limits, per viewer or client IP, per minute
	ConfigRatePerMinute int `env:"NAVKIT_CONFIG_RATE_PER_MINUTE" envDefault:"60"`
	PanelRatePerMinute  int `env:"NAVKIT_PANEL_RATE_PER_MINUTE" envDefault:"120"`

	// EventRetentionDays controls how long event log rows are retained.
	EventRetentionDays int `env:"NAVKIT_EVENT_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"NAVKIT_DO_SEED" envDefault:"false"` // Enable demo data seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTL returns the cache time-to-live as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheMinutes) * time.Minute
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.MaxPanelItems <= 0 {
		return nil, fmt.Errorf("NAVKIT_MAX_PANEL_ITEMS must be positive, got %d", cfg.MaxPanelItems)
	}
	if len(cfg.AdminToken) < 16 {
		return nil, fmt.Errorf("NAVKIT_ADMIN_TOKEN must be at least 16 bytes long; "+
			"generate one with: openssl rand -base64 24 (got %d bytes)", len(cfg.AdminToken))
	}

	return cfg, nil
}
