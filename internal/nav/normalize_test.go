// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeTextInvalidJSON(t *testing.T) {
	n := NewNormalizer(nil, 20)
	for _, text := range []string{"", "not json", "{broken", "[1,2"} {
		doc := n.NormalizeText(context.Background(), text)
		if !reflect.DeepEqual(doc, DefaultDocument()) {
			t.Errorf("NormalizeText(%q) = %+v, want default document", text, doc)
		}
	}
}

func TestNormalizeTextNonObject(t *testing.T) {
	n := NewNormalizer(nil, 20)
	// Valid JSON that is not an object still normalizes to the default
	// shape; only a parse failure short-circuits.
	doc := n.NormalizeText(context.Background(), `[1, 2, 3]`)
	if len(doc.Menus) != 0 || doc.Version != 1 {
		t.Errorf("array document = %+v, want empty default", doc)
	}
}

func TestValidDocument(t *testing.T) {
	n := NewNormalizer(nil, 20)
	tests := []struct {
		text string
		want bool
	}{
		{`{}`, true},
		{`{"menus": "garbage shape is fine"}`, true},
		{`[]`, false},
		{`"string"`, false},
		{`42`, false},
		{`not json`, false},
	}
	for _, tt := range tests {
		if got := n.ValidDocument(tt.text); got != tt.want {
			t.Errorf("ValidDocument(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	n := NewNormalizer(nil, 20)
	doc := n.NormalizeText(context.Background(), `{
		"menus": [
			{
				"placement": "bogus",
				"layout": "wat",
				"open_mode": "teleport",
				"hover_delay_ms": 5000,
				"items": [
					{"type": "mystery", "url": "javascript:alert(1)"}
				]
			}
		]
	}`)

	if len(doc.Menus) != 1 {
		t.Fatalf("menus = %d, want 1", len(doc.Menus))
	}
	menu := doc.Menus[0]
	if menu.ID != "menu-1" {
		t.Errorf("generated menu id = %q, want menu-1", menu.ID)
	}
	if menu.Label != "Menu 1" {
		t.Errorf("generated label = %q, want Menu 1", menu.Label)
	}
	if menu.Placement != PlacementTopNav {
		t.Errorf("placement fallback = %q, want top_nav", menu.Placement)
	}
	if menu.Layout != LayoutMegaGrid {
		t.Errorf("layout fallback = %q, want mega_grid", menu.Layout)
	}
	if menu.OpenMode != OpenHover {
		t.Errorf("open_mode fallback = %q, want hover", menu.OpenMode)
	}
	if menu.HoverDelayMs != MaxHoverDelayMs {
		t.Errorf("hover delay = %d, want clamped to %d", menu.HoverDelayMs, MaxHoverDelayMs)
	}

	if len(menu.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(menu.Items))
	}
	item := menu.Items[0]
	if item.ID != "menu-1-1" {
		t.Errorf("generated item id = %q, want menu-1-1", item.ID)
	}
	if item.Type != ItemLink {
		t.Errorf("type fallback = %q, want link", item.Type)
	}
	if item.URL != nil {
		t.Errorf("javascript url survived sanitization: %q", *item.URL)
	}
}

func TestNormalizeNestedIDs(t *testing.T) {
	n := NewNormalizer(nil, 20)
	doc := n.NormalizeText(context.Background(), `{
		"menus": [{
			"id": "main",
			"items": [
				{"title": "First", "children": [{"title": "Nested"}, {"title": "Deeper", "children": [{}]}]},
				{"title": "Second"}
			]
		}]
	}`)

	items := doc.Menus[0].Items
	if items[0].ID != "main-1" || items[1].ID != "main-2" {
		t.Errorf("item ids = %q, %q", items[0].ID, items[1].ID)
	}
	children := items[0].Children
	if children[0].ID != "main-1-1" || children[1].ID != "main-1-2" {
		t.Errorf("child ids = %q, %q", children[0].ID, children[1].ID)
	}
	if children[1].Children[0].ID != "main-1-2-1" {
		t.Errorf("grandchild id = %q, want main-1-2-1", children[1].Children[0].ID)
	}
}

func TestNormalizePanel(t *testing.T) {
	n := NewNormalizer(nil, 10)
	doc := n.NormalizeText(context.Background(), `{
		"menus": [{
			"items": [
				{"panel": {"source_type": "nonsense", "time_range": "eternity", "limit": 999}},
				{"panel": {"source_type": "featured", "limit": 0, "show_excerpt": false}},
				{"panel": "not an object"}
			]
		}]
	}`)

	items := doc.Menus[0].Items

	first := items[0].Panel
	if first == nil {
		t.Fatal("panel dropped")
	}
	if first.SourceType != SourceLatest {
		t.Errorf("source fallback = %q, want latest", first.SourceType)
	}
	if first.TimeRange != RangeWeekly {
		t.Errorf("time range fallback = %q, want weekly", first.TimeRange)
	}
	if first.Limit != 10 {
		t.Errorf("limit = %d, want clamped to configured max 10", first.Limit)
	}
	if !first.ShowThumbnail || !first.ShowExcerpt {
		t.Errorf("display flags default off: %+v", first)
	}

	second := items[1].Panel
	if second.SourceType != SourceFeatured {
		t.Errorf("source = %q, want featured", second.SourceType)
	}
	if second.Limit != DefaultPanelLimit {
		t.Errorf("zero limit = %d, want default %d", second.Limit, DefaultPanelLimit)
	}
	if second.ShowExcerpt {
		t.Error("explicit show_excerpt false was not honored")
	}

	if items[2].Panel != nil {
		t.Error("non-object panel should normalize to nil")
	}
}

func TestNormalizerServerCap(t *testing.T) {
	// A configured maximum past the hard cap is clamped to it.
	n := NewNormalizer(nil, 500)
	doc := n.NormalizeText(context.Background(), `{"menus": [{"items": [{"panel": {"limit": 500}}]}]}`)
	if got := doc.Menus[0].Items[0].Panel.Limit; got != MaxServerLimit {
		t.Errorf("limit = %d, want server cap %d", got, MaxServerLimit)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(nil, 20)
	raw := `{
		"version": 2,
		"menus": [{
			"id": "main",
			"label": "Main",
			"placement": "sidebar",
			"open_mode": "click",
			"hover_delay_ms": 150,
			"visibility": {"logged_in_only": true, "groups": ["Staff"]},
			"items": [
				{"title": "Latest", "type": "link", "url": "/latest"},
				{"title": "Tagged", "type": "tag", "tag": "golang",
				 "panel": {"source_type": "tag_latest", "tag": "golang", "limit": 4}}
			]
		}],
		"sidebars": [{"id": "side", "widgets": [{"kind": "recent"}]}],
		"discovery_blocks": [{"id": "disco"}]
	}`

	once := n.NormalizeText(context.Background(), raw)

	// Re-normalizing the serialized output must be a fixed point.
	data, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	twice := n.NormalizeText(context.Background(), string(data))

	onceJSON, _ := json.Marshal(once)
	twiceJSON, _ := json.Marshal(twice)
	if string(onceJSON) != string(twiceJSON) {
		t.Errorf("normalization is not idempotent:\n first: %s\nsecond: %s", onceJSON, twiceJSON)
	}
}

func TestNormalizeGenericVisibility(t *testing.T) {
	n := NewNormalizer(nil, 20)
	doc := n.NormalizeText(context.Background(), `{
		"sidebars": [{"id": "side", "custom_field": "kept", "visibility": {"logged_in_only": true}}],
		"discovery_blocks": ["not an object"]
	}`)

	sidebar := doc.Sidebars[0]
	if sidebar["custom_field"] != "kept" {
		t.Error("unknown sidebar keys must pass through")
	}
	// Visibility is kept in decoded-JSON shape so the entity serializes
	// the same before and after a cache round-trip.
	vis, ok := sidebar["visibility"].(map[string]any)
	if !ok {
		t.Fatalf("sidebar visibility type %T, want map[string]any", sidebar["visibility"])
	}
	if vis["logged_in_only"] != true {
		t.Error("sidebar rule lost logged_in_only")
	}
	if !NormalizeVisibility(vis).LoggedInOnly {
		t.Error("stored visibility does not round-trip through rule evaluation")
	}

	// Malformed entries become empty entities with an empty rule, not
	// dropped ones.
	if len(doc.DiscoveryBlocks) != 1 {
		t.Fatalf("discovery blocks = %d, want 1", len(doc.DiscoveryBlocks))
	}
	if got := NormalizeVisibility(doc.DiscoveryBlocks[0]["visibility"]); !got.IsEmpty() {
		t.Errorf("malformed block rule = %+v, want empty", got)
	}
}

func TestTitleize(t *testing.T) {
	tests := []struct{ input, want string }{
		{"menu-1", "Menu 1"},
		{"main_nav", "Main Nav"},
		{"docs", "Docs"},
	}
	for _, tt := range tests {
		if got := titleize(tt.input); got != tt.want {
			t.Errorf("titleize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
