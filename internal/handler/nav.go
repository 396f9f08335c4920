// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/navkit/internal/middleware"
	"github.com/olegiv/navkit/internal/nav"
)

// Config handles GET /api/nav/config: the navigation document filtered
// for the requesting viewer.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	doc := h.store.VisibleConfig(r.Context(), viewer)
	h.writeJSON(w, http.StatusOK, doc)
}

// Panel handles GET /api/nav/panel: one panel's content feed. All query
// fields are optional; invalid values fall back to defaults.
func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)

	query := r.URL.Query()
	req := nav.PanelRequest{
		SourceType:   query.Get("source_type"),
		CategorySlug: query.Get("category_slug"),
		Tag:          query.Get("tag"),
		TimeRange:    query.Get("time_range"),
	}
	if id, err := strconv.ParseInt(query.Get("category_id"), 10, 64); err == nil {
		req.CategoryID = id
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		req.Limit = limit
	}

	result := h.feed.Fetch(r.Context(), viewer, req)
	h.writeJSON(w, http.StatusOK, result)
}

// Validate handles POST /api/nav/validate: reports whether the request
// body is an importable navigation document.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"valid": h.store.ValidDocument(body)})
}
