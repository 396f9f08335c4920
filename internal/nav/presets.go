// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import "context"

// presetDocuments is the fixed catalog of starting-point documents
// offered to administrators. They are normalized on the way out, so the
// catalog is always enum-valid regardless of how it is edited here.
var presetDocuments = map[string]string{
	"reddit_style": `{
		"version": 1,
		"menus": [
			{
				"id": "reddit-primary",
				"label": "Reddit Style",
				"placement": "top_nav",
				"layout": "mega_grid",
				"open_mode": "hover",
				"hover_delay_ms": 100,
				"items": [
					{"id": "hot", "title": "Hot", "type": "link", "url": "/latest"},
					{"id": "new", "title": "New", "type": "link", "url": "/new"},
					{"id": "top", "title": "Top", "type": "link", "url": "/top"},
					{
						"id": "communities",
						"title": "Communities",
						"type": "section_heading",
						"panel": {"source_type": "category_latest", "category_slug": "general", "limit": 8}
					}
				]
			}
		],
		"sidebars": [],
		"discovery_blocks": []
	}`,
	"netflix_style": `{
		"version": 1,
		"menus": [
			{
				"id": "netflix-primary",
				"label": "Netflix Style",
				"placement": "top_nav",
				"layout": "mega_grid",
				"open_mode": "hover",
				"hover_delay_ms": 220,
				"items": [
					{"id": "home", "title": "Home", "type": "link", "url": "/"},
					{
						"id": "trending",
						"title": "Trending",
						"type": "link",
						"url": "/top",
						"panel": {"source_type": "category_top", "category_slug": "general", "time_range": "weekly", "limit": 10}
					},
					{
						"id": "new-releases",
						"title": "New Releases",
						"type": "link",
						"url": "/latest",
						"panel": {"source_type": "latest", "limit": 10}
					}
				]
			}
		],
		"sidebars": [],
		"discovery_blocks": []
	}`,
	"knowledge_base": `{
		"version": 1,
		"menus": [
			{
				"id": "kb-primary",
				"label": "Knowledge Base",
				"placement": "top_nav",
				"layout": "dropdown",
				"open_mode": "click",
				"hover_delay_ms": 0,
				"items": [
					{"id": "docs-home", "title": "Documentation", "type": "link", "url": "/categories"},
					{
						"id": "popular-guides",
						"title": "Popular Guides",
						"type": "section_heading",
						"panel": {"source_type": "category_top", "category_slug": "general", "time_range": "monthly", "limit": 6}
					},
					{
						"id": "release-notes",
						"title": "Release Notes",
						"type": "tag",
						"tag": "release-notes"
					}
				]
			}
		],
		"sidebars": [],
		"discovery_blocks": []
	}`,
}

// Presets returns the example document catalog, normalized.
func (s *Store) Presets(ctx context.Context) map[string]Document {
	out := make(map[string]Document, len(presetDocuments))
	for name, text := range presetDocuments {
		out[name] = s.norm.NormalizeText(ctx, text)
	}
	return out
}
