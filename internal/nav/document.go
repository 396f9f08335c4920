// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav implements the navigation configuration core: document
// normalization, per-viewer visibility filtering, and panel feed queries.
package nav

// Placement controls where a menu is mounted.
type Placement string

// Layout controls how an open menu is rendered.
type Layout string

// OpenMode controls how a menu is opened.
type OpenMode string

// ItemType is the closed set of navigation item kinds.
type ItemType string

// SourceType selects the scope of a panel feed.
type SourceType string

// TimeRange selects the lookback window of a panel feed.
type TimeRange string

// Allowed enum values and their fallbacks. A value outside the allowed
// set is replaced by the fallback during normalization, never rejected.
const (
	PlacementTopNav   Placement = "top_nav"
	PlacementSidebar  Placement = "sidebar"
	PlacementFloating Placement = "floating"

	LayoutDropdown Layout = "dropdown"
	LayoutMegaGrid Layout = "mega_grid"
	LayoutSidebar  Layout = "sidebar"

	OpenHover OpenMode = "hover"
	OpenClick OpenMode = "click"

	ItemLink           ItemType = "link"
	ItemCategory       ItemType = "category"
	ItemTag            ItemType = "tag"
	ItemTopic          ItemType = "topic"
	ItemExternalLink   ItemType = "external_link"
	ItemSectionHeading ItemType = "section_heading"
	ItemDivider        ItemType = "divider"

	SourceLatest         SourceType = "latest"
	SourceCategoryLatest SourceType = "category_latest"
	SourceCategoryTop    SourceType = "category_top"
	SourceTagLatest      SourceType = "tag_latest"
	SourceFeatured       SourceType = "featured"

	RangeDaily     TimeRange = "daily"
	RangeWeekly    TimeRange = "weekly"
	RangeMonthly   TimeRange = "monthly"
	RangeQuarterly TimeRange = "quarterly"
	RangeYearly    TimeRange = "yearly"
	RangeAll       TimeRange = "all"
)

var (
	allowedPlacements = map[Placement]bool{PlacementTopNav: true, PlacementSidebar: true, PlacementFloating: true}
	allowedLayouts    = map[Layout]bool{LayoutDropdown: true, LayoutMegaGrid: true, LayoutSidebar: true}
	allowedOpenModes  = map[OpenMode]bool{OpenHover: true, OpenClick: true}
	allowedItemTypes  = map[ItemType]bool{
		ItemLink: true, ItemCategory: true, ItemTag: true, ItemTopic: true,
		ItemExternalLink: true, ItemSectionHeading: true, ItemDivider: true,
	}
	allowedSources = map[SourceType]bool{
		SourceLatest: true, SourceCategoryLatest: true, SourceCategoryTop: true,
		SourceTagLatest: true, SourceFeatured: true,
	}
	allowedTimeRanges = map[TimeRange]bool{
		RangeDaily: true, RangeWeekly: true, RangeMonthly: true,
		RangeQuarterly: true, RangeYearly: true, RangeAll: true,
	}
)

// Document is the fully normalized navigation configuration. The three
// collections are always non-nil, even when empty.
type Document struct {
	Version         int             `json:"version"`
	Menus           []Menu          `json:"menus"`
	Sidebars        []GenericEntity `json:"sidebars"`
	DiscoveryBlocks []GenericEntity `json:"discovery_blocks"`
}

// Menu is a top-level navigation group.
type Menu struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	Placement    Placement `json:"placement"`
	Layout       Layout    `json:"layout"`
	OpenMode     OpenMode  `json:"open_mode"`
	HoverDelayMs int       `json:"hover_delay_ms"`
	Visibility   Rule      `json:"visibility"`
	Items        []Item    `json:"items"`
}

// Item is a navigation entry. Items form a tree through Children; the
// normalizer guarantees document-wide unique IDs by positional generation.
type Item struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Type           ItemType `json:"type"`
	URL            *string  `json:"url"`
	ResolvedURL    *string  `json:"resolved_url"`
	Icon           *string  `json:"icon"`
	ImageURL       *string  `json:"image_url"`
	CustomCSSClass *string  `json:"custom_css_class"`
	CustomCSS      *string  `json:"custom_css"`
	CategoryID     int64    `json:"category_id,omitempty"`
	CategorySlug   string   `json:"category_slug,omitempty"`
	Tag            string   `json:"tag,omitempty"`
	TopicID        int64    `json:"topic_id,omitempty"`
	Visibility     Rule     `json:"visibility"`
	Panel          *Panel   `json:"panel"`
	Children       []Item   `json:"children"`
}

// Panel is the declarative content-feed descriptor attached to an item.
type Panel struct {
	SourceType    SourceType `json:"source_type"`
	CategorySlug  *string    `json:"category_slug"`
	CategoryID    *int64     `json:"category_id"`
	Tag           *string    `json:"tag"`
	TimeRange     TimeRange  `json:"time_range"`
	Limit         int        `json:"limit"`
	ShowThumbnail bool       `json:"show_thumbnail"`
	ShowExcerpt   bool       `json:"show_excerpt"`
}

// GenericEntity is a loosely structured document node (sidebars and
// discovery blocks). Only its visibility rule is normalized; all other
// keys pass through untouched.
type GenericEntity map[string]any
