// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/navkit/internal/middleware"
	"github.com/olegiv/navkit/internal/model"
)

// maxImportBytes bounds the accepted size of an imported document.
const maxImportBytes = 1 << 20

// Presets handles GET /api/nav/presets: the fixed example document catalog.
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Presets(r.Context()))
}

// Export handles GET /api/nav/export: the active profile summary, the
// raw stored text, and the document as the requesting admin sees it.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := middleware.GetViewer(r)

	h.writeJSON(w, http.StatusOK, map[string]any{
		"active_profile": h.store.ActiveProfileSummary(ctx),
		"raw_json":       h.store.RawJSON(ctx),
		"normalized":     h.store.VisibleConfig(ctx, viewer),
	})
}

// importRequest is the body of POST /api/nav/import.
type importRequest struct {
	Name       string `json:"name"`
	ConfigJSON string `json:"config_json"`
}

// Import handles POST /api/nav/import: validates the submitted document
// and stores it as the new active profile. This is the only path that
// surfaces an explicit accept/reject signal for a document.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var req importRequest
	if err := decodeJSON(body, &req); err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Request body must be a JSON object", nil)
		return
	}
	if !h.store.ValidDocument(req.ConfigJSON) {
		middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "invalid_document", "config_json is not a valid navigation document", nil)
		return
	}

	name := req.Name
	if name == "" {
		name = "Imported"
	}
	profile, err := h.queries.CreateProfile(r.Context(), name, req.ConfigJSON, true)
	if err != nil {
		h.logger.Error("failed to store imported profile", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to store profile", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": profile.Summary(),
	})
}

// ListProfiles handles GET /api/nav/profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.queries.ListProfiles(r.Context())
	if err != nil {
		h.logger.Error("failed to list profiles", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to list profiles", nil)
		return
	}

	summaries := make([]map[string]any, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		summaries = append(summaries, map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"profile_key": p.ProfileKey,
			"active":      p.Active,
			"updated_at":  p.UpdatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"profiles": summaries})
}

// ActivateProfile handles POST /api/nav/profiles/{id}/activate.
func (h *Handler) ActivateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Profile id must be a positive integer", nil)
		return
	}

	if err := h.queries.ActivateProfile(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Profile not found", nil)
			return
		}
		h.logger.Error("failed to activate profile", "profile_id", id, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to activate profile", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ClearCache handles POST /api/nav/cache/clear.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear cache", "category", model.EventCategoryCache, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to clear cache", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// readBody reads a bounded request body, writing an error response on
// failure.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Failed to read request body", nil)
		return "", false
	}
	return string(body), true
}
