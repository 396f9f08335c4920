// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP endpoints of the navigation service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/navkit/internal/cache"
	"github.com/olegiv/navkit/internal/middleware"
	"github.com/olegiv/navkit/internal/nav"
	"github.com/olegiv/navkit/internal/store"
)

// Handler bundles the navigation endpoints and their dependencies.
type Handler struct {
	store   *nav.Store
	feed    *nav.FeedQuery
	queries *store.Queries
	cache   cache.Cacher
	logger  *slog.Logger
}

// Options configures a Handler.
type Options struct {
	Store   *nav.Store
	Feed    *nav.FeedQuery
	Queries *store.Queries
	Cache   cache.Cacher
	Logger  *slog.Logger
}

// New creates a Handler.
func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:   opts.Store,
		feed:    opts.Feed,
		queries: opts.Queries,
		cache:   opts.Cache,
		logger:  logger,
	}
}

// RouteOptions carries the middleware parameters for Routes.
type RouteOptions struct {
	AdminToken          string
	ConfigRatePerMinute int
	PanelRatePerMinute  int
}

// Routes mounts the navigation API under /api/nav.
func (h *Handler) Routes(r chi.Router, opts RouteOptions) {
	admin := middleware.RequireAdmin(opts.AdminToken)

	r.Route("/api/nav", func(r chi.Router) {
		r.With(middleware.RateLimit(opts.ConfigRatePerMinute)).Get("/config", h.Config)
		r.With(middleware.RateLimit(opts.PanelRatePerMinute)).Get("/panel", h.Panel)
		r.Post("/validate", h.Validate)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/presets", h.Presets)
			r.Get("/export", h.Export)
			r.Post("/import", h.Import)
			r.Get("/profiles", h.ListProfiles)
			r.Post("/profiles/{id}/activate", h.ActivateProfile)
			r.Post("/cache/clear", h.ClearCache)
		})
	})
}

// writeJSON writes v as a JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
