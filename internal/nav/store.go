// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/navkit/internal/cache"
	"github.com/olegiv/navkit/internal/model"
)

// ProfileSource yields the stored navigation profile currently
// designated as live. Implementations return (nil, nil) when no profile
// is active; errors are recovered by the store with the built-in default.
type ProfileSource interface {
	ActiveProfile(ctx context.Context) (*model.NavigationProfile, error)
}

// StoreOptions configures a Store.
type StoreOptions struct {
	Source        ProfileSource // may be nil
	Directory     Directory     // may be nil
	Cache         cache.Cacher  // backing byte cache, required
	FallbackJSON  string        // global fallback document, used when no profile is active
	MaxPanelItems int           // configured panel limit ceiling
	TTL           time.Duration // normalized-document cache TTL
	Logger        *slog.Logger  // nil uses slog.Default
}

// Store orchestrates document fetch, normalization, caching and
// per-viewer visibility filtering.
type Store struct {
	src      ProfileSource
	dir      Directory
	docs     *cache.TypedCache[Document]
	norm     *Normalizer
	fallback string
	logger   *slog.Logger
}

// NewStore creates a Store.
func NewStore(opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		src:      opts.Source,
		dir:      opts.Directory,
		docs:     cache.NewTypedCache[Document](opts.Cache, opts.TTL),
		norm:     NewNormalizer(opts.Directory, opts.MaxPanelItems),
		fallback: opts.FallbackJSON,
		logger:   logger,
	}
}

// Normalizer returns the store's document normalizer.
func (s *Store) Normalizer() *Normalizer {
	return s.norm
}

// ValidDocument reports whether text is importable. See
// Normalizer.ValidDocument.
func (s *Store) ValidDocument(text string) bool {
	return s.norm.ValidDocument(text)
}

// RawJSON resolves the document text to serve: the most recently updated
// active profile, then the configured fallback document, then the
// built-in empty default. Source failures degrade silently so a broken
// profile store can never break navigation rendering.
func (s *Store) RawJSON(ctx context.Context) string {
	if s.src != nil {
		profile, err := s.src.ActiveProfile(ctx)
		if err != nil {
			s.logger.Warn("active profile lookup failed, falling back", "error", err)
		} else if profile != nil && profile.ConfigJSON != "" {
			return profile.ConfigJSON
		}
	}
	if s.fallback != "" {
		return s.fallback
	}
	data, _ := json.Marshal(DefaultDocument())
	return string(data)
}

// ActiveProfileSummary returns the lightweight view of the active
// profile, or nil when none is active.
func (s *Store) ActiveProfileSummary(ctx context.Context) *model.ProfileSummary {
	if s.src == nil {
		return nil
	}
	profile, err := s.src.ActiveProfile(ctx)
	if err != nil || profile == nil {
		return nil
	}
	summary := profile.Summary()
	return &summary
}

// Normalized returns the normalized form of the current document,
// read-through cached by the content hash of the raw text. A document
// change produces a new key, so entries are never overwritten in place.
func (s *Store) Normalized(ctx context.Context) Document {
	raw := s.RawJSON(ctx)
	key := "nav:config:normalized:" + contentHash([]byte(raw))

	doc, err := s.docs.GetOrSet(ctx, key, func() (*Document, error) {
		d := s.norm.NormalizeText(ctx, raw)
		return &d, nil
	})
	if err != nil || doc == nil {
		return DefaultDocument()
	}
	return *doc
}

// VisibleConfig returns the navigation document filtered for one viewer:
// nodes denied by their visibility rules are pruned depth-first, menus
// left without items are dropped, and category/topic targets are
// re-resolved under the viewer's permissions.
func (s *Store) VisibleConfig(ctx context.Context, viewer Viewer) Document {
	doc := s.Normalized(ctx)
	vctx := BuildContext(viewer)

	out := Document{
		Version:         doc.Version,
		Menus:           []Menu{},
		Sidebars:        []GenericEntity{},
		DiscoveryBlocks: []GenericEntity{},
	}
	for _, menu := range doc.Menus {
		if visible, ok := s.visibleMenu(ctx, menu, viewer, vctx); ok {
			out.Menus = append(out.Menus, visible)
		}
	}
	for _, sidebar := range doc.Sidebars {
		if visible, ok := visibleSidebar(sidebar, vctx); ok {
			out.Sidebars = append(out.Sidebars, visible)
		}
	}
	for _, block := range doc.DiscoveryBlocks {
		if Allowed(NormalizeVisibility(block["visibility"]), vctx) {
			out.DiscoveryBlocks = append(out.DiscoveryBlocks, block)
		}
	}
	return out
}

func (s *Store) visibleMenu(ctx context.Context, menu Menu, viewer Viewer, vctx Context) (Menu, bool) {
	if !Allowed(menu.Visibility, vctx) {
		return Menu{}, false
	}

	items := []Item{}
	for _, item := range menu.Items {
		if visible, ok := s.visibleItem(ctx, item, viewer, vctx); ok {
			items = append(items, visible)
		}
	}
	// A navigation group with nothing in it is noise, not an empty state.
	if len(items) == 0 {
		return Menu{}, false
	}

	menu.Items = items
	return menu, true
}

func (s *Store) visibleItem(ctx context.Context, item Item, viewer Viewer, vctx Context) (Item, bool) {
	if !Allowed(item.Visibility, vctx) {
		return Item{}, false
	}

	children := []Item{}
	for _, child := range item.Children {
		if visible, ok := s.visibleItem(ctx, child, viewer, vctx); ok {
			children = append(children, visible)
		}
	}

	item.Children = children
	item.ResolvedURL = resolveURLForViewer(ctx, s.dir, viewer, &item)

	// Dividers exist only to separate visible siblings.
	if item.Type == ItemDivider && len(children) == 0 && item.Panel == nil {
		return Item{}, false
	}
	return item, true
}

// visibleSidebar filters a sidebar's widgets by their own rules. A
// sidebar that survives its own rule is kept even with zero widgets.
func visibleSidebar(sidebar GenericEntity, vctx Context) (GenericEntity, bool) {
	if !Allowed(NormalizeVisibility(sidebar["visibility"]), vctx) {
		return nil, false
	}

	widgets, ok := sidebar["widgets"].([]any)
	if !ok {
		return sidebar, true
	}

	kept := []any{}
	for _, widget := range widgets {
		obj, ok := widget.(map[string]any)
		if !ok {
			continue
		}
		if Allowed(NormalizeVisibility(obj["visibility"]), vctx) {
			kept = append(kept, widget)
		}
	}

	out := make(GenericEntity, len(sidebar))
	for k, v := range sidebar {
		out[k] = v
	}
	out["widgets"] = kept
	return out, true
}

// contentHash returns the canonical cache-key digest for a payload.
func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
