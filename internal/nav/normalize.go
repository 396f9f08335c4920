// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPanelLimit is used when an author omits a panel limit or sets a
// non-positive one.
const DefaultPanelLimit = 6

// MaxServerLimit is the hard cap on panel items, independent of any
// configured maximum. It defends against misconfigured or hostile
// documents.
const MaxServerLimit = 40

// MaxHoverDelayMs bounds the author-configurable hover open delay.
const MaxHoverDelayMs = 1000

// Normalizer rewrites arbitrary JSON documents into canonical navigation
// documents. Normalization is total: malformed values are replaced by
// defaults, never rejected.
type Normalizer struct {
	dir           Directory
	maxPanelItems int
}

// NewNormalizer creates a Normalizer. dir may be nil, in which case
// category and topic targets resolve to the sanitized raw URL.
// maxPanelItems is the configured upper bound on panel limits; values
// outside [1, MaxServerLimit] are clamped.
func NewNormalizer(dir Directory, maxPanelItems int) *Normalizer {
	if maxPanelItems <= 0 || maxPanelItems > MaxServerLimit {
		maxPanelItems = MaxServerLimit
	}
	return &Normalizer{dir: dir, maxPanelItems: maxPanelItems}
}

// DefaultDocument returns the built-in empty navigation document.
func DefaultDocument() Document {
	return Document{
		Version:         1,
		Menus:           []Menu{},
		Sidebars:        []GenericEntity{},
		DiscoveryBlocks: []GenericEntity{},
	}
}

// NormalizeText parses and normalizes a raw JSON document. Text that is
// not valid JSON yields the default document.
func (n *Normalizer) NormalizeText(ctx context.Context, text string) Document {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return DefaultDocument()
	}
	return n.Normalize(ctx, raw)
}

// ValidDocument reports whether text can be imported: it must parse as
// JSON with an object at the top level. Shape problems inside the object
// are not errors; normalization absorbs them.
func (n *Normalizer) ValidDocument(text string) bool {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return false
	}
	_, ok := raw.(map[string]any)
	return ok
}

// Normalize rewrites a decoded JSON value into a canonical Document.
// It never fails; any value not matching the expected shape is treated
// as absent.
func (n *Normalizer) Normalize(ctx context.Context, raw any) Document {
	obj, _ := raw.(map[string]any)

	doc := DefaultDocument()
	if v := asInt(obj["version"]); v != 0 {
		doc.Version = v
	}
	if menus, ok := obj["menus"].([]any); ok {
		for i, menu := range menus {
			doc.Menus = append(doc.Menus, n.normalizeMenu(ctx, menu, i))
		}
	}
	if sidebars, ok := obj["sidebars"].([]any); ok {
		for _, sidebar := range sidebars {
			doc.Sidebars = append(doc.Sidebars, normalizeGeneric(sidebar))
		}
	}
	if blocks, ok := obj["discovery_blocks"].([]any); ok {
		for _, block := range blocks {
			doc.DiscoveryBlocks = append(doc.DiscoveryBlocks, normalizeGeneric(block))
		}
	}
	return doc
}

func (n *Normalizer) normalizeMenu(ctx context.Context, raw any, index int) Menu {
	obj, _ := raw.(map[string]any)

	id := strings.TrimSpace(asString(obj["id"]))
	if id == "" {
		id = fmt.Sprintf("menu-%d", index+1)
	}
	label := strings.TrimSpace(asString(obj["label"]))
	if label == "" {
		label = titleize(id)
	}

	menu := Menu{
		ID:           id,
		Label:        label,
		Placement:    safeEnum(Placement(asString(obj["placement"])), allowedPlacements, PlacementTopNav),
		Layout:       safeEnum(Layout(asString(obj["layout"])), allowedLayouts, LayoutMegaGrid),
		OpenMode:     safeEnum(OpenMode(asString(obj["open_mode"])), allowedOpenModes, OpenHover),
		HoverDelayMs: clamp(asInt(obj["hover_delay_ms"]), 0, MaxHoverDelayMs),
		Visibility:   NormalizeVisibility(obj["visibility"]),
		Items:        []Item{},
	}
	if items, ok := obj["items"].([]any); ok {
		for i, item := range items {
			menu.Items = append(menu.Items, n.normalizeItem(ctx, item, fmt.Sprintf("%s-%d", id, i+1)))
		}
	}
	return menu
}

func (n *Normalizer) normalizeItem(ctx context.Context, raw any, generatedID string) Item {
	obj, _ := raw.(map[string]any)

	id := strings.TrimSpace(asString(obj["id"]))
	if id == "" {
		id = generatedID
	}

	item := Item{
		ID:             id,
		Title:          asString(obj["title"]),
		Type:           safeEnum(ItemType(asString(obj["type"])), allowedItemTypes, ItemLink),
		URL:            SanitizeURL(asString(obj["url"])),
		Icon:           presence(obj["icon"]),
		ImageURL:       presence(obj["image_url"]),
		CustomCSSClass: presence(obj["custom_css_class"]),
		CustomCSS:      presence(obj["custom_css"]),
		CategorySlug:   strings.TrimSpace(asString(obj["category_slug"])),
		Tag:            strings.TrimSpace(asString(obj["tag"])),
		Visibility:     NormalizeVisibility(obj["visibility"]),
		Panel:          n.normalizePanel(obj["panel"]),
		Children:       []Item{},
	}
	if categoryID := asInt(obj["category_id"]); categoryID > 0 {
		item.CategoryID = int64(categoryID)
	}
	if topicID := asInt(obj["topic_id"]); topicID > 0 {
		item.TopicID = int64(topicID)
	}
	item.ResolvedURL = n.resolveURL(ctx, &item)

	if children, ok := obj["children"].([]any); ok {
		for i, child := range children {
			item.Children = append(item.Children, n.normalizeItem(ctx, child, fmt.Sprintf("%s-%d", id, i+1)))
		}
	}
	return item
}

func (n *Normalizer) normalizePanel(raw any) *Panel {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	limit := asInt(obj["limit"])
	if limit <= 0 {
		limit = DefaultPanelLimit
	}
	limit = clamp(limit, 1, n.maxPanelItems)

	panel := Panel{
		SourceType:    safeEnum(SourceType(asString(obj["source_type"])), allowedSources, SourceLatest),
		CategorySlug:  presence(obj["category_slug"]),
		Tag:           presence(obj["tag"]),
		TimeRange:     safeEnum(TimeRange(asString(obj["time_range"])), allowedTimeRanges, RangeWeekly),
		Limit:         limit,
		ShowThumbnail: flagDefaultTrue(obj["show_thumbnail"]),
		ShowExcerpt:   flagDefaultTrue(obj["show_excerpt"]),
	}
	if categoryID := asInt(obj["category_id"]); categoryID > 0 {
		id := int64(categoryID)
		panel.CategoryID = &id
	}
	return &panel
}

func normalizeGeneric(raw any) GenericEntity {
	obj, ok := raw.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}
	entity := make(GenericEntity, len(obj)+1)
	for k, v := range obj {
		entity[k] = v
	}
	entity["visibility"] = NormalizeVisibility(obj["visibility"]).asMap()
	return entity
}

// safeEnum accepts value only on an exact match against the allowed set,
// substituting fallback otherwise.
func safeEnum[T comparable](value T, allowed map[T]bool, fallback T) T {
	if allowed[value] {
		return value
	}
	return fallback
}

var titleCaser = cases.Title(language.English)

// titleize derives a human label from a generated identifier, e.g.
// "menu-1" becomes "Menu 1".
func titleize(id string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(id)
	return titleCaser.String(words)
}
