// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Seed populates an empty database with demo categories, topics and a
// starter navigation profile for local development. It is a no-op when
// categories already exist.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("checking seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	categories := []struct {
		name, slug, color string
		restricted        bool
		minTrust          int
	}{
		{"General", "general", "0088CC", false, 0},
		{"Announcements", "announcements", "F7941D", false, 0},
		{"Staff Lounge", "staff-lounge", "E45735", true, 3},
	}
	categoryIDs := map[string]int64{}
	for i, c := range categories {
		res, err := db.ExecContext(ctx,
			"INSERT INTO categories (name, slug, color, position, read_restricted, min_trust_level, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			c.name, c.slug, c.color, i, c.restricted, c.minTrust, now, now)
		if err != nil {
			return fmt.Errorf("seeding category %q: %w", c.slug, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading category id: %w", err)
		}
		categoryIDs[c.slug] = id
	}

	topics := []struct {
		slug, title, category, tag string
		likes, views, posts        int64
		pinned                     bool
		bumpedAgo                  time.Duration
	}{
		{"welcome-to-the-community", "Welcome to the community", "general", "", 42, 1800, 25, true, 2 * time.Hour},
		{"weekly-roundup", "Weekly roundup", "announcements", "release-notes", 15, 600, 4, false, 26 * time.Hour},
		{"introduce-yourself", "Introduce yourself", "general", "", 30, 1200, 80, false, 5 * time.Hour},
		{"moderation-guidelines", "Moderation guidelines", "staff-lounge", "", 8, 150, 12, false, 72 * time.Hour},
	}
	for _, t := range topics {
		res, err := db.ExecContext(ctx,
			"INSERT INTO topics (slug, title, fancy_title, category_id, author_username, excerpt, posts_count, like_count, views, pinned_globally, visible, created_at, bumped_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)",
			t.slug, t.title, t.title, categoryIDs[t.category], "system", "Seeded demo topic.",
			t.posts, t.likes, t.views, t.pinned, now.Add(-t.bumpedAgo-time.Hour), now.Add(-t.bumpedAgo))
		if err != nil {
			return fmt.Errorf("seeding topic %q: %w", t.slug, err)
		}
		if t.tag == "" {
			continue
		}
		topicID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading topic id: %w", err)
		}
		if _, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO tags (name) VALUES (?)", t.tag); err != nil {
			return fmt.Errorf("seeding tag %q: %w", t.tag, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO topic_tags (topic_id, tag_id) SELECT ?, id FROM tags WHERE name = ?", topicID, t.tag); err != nil {
			return fmt.Errorf("tagging topic %q: %w", t.slug, err)
		}
	}

	starter := `{
		"version": 1,
		"menus": [
			{
				"id": "primary",
				"label": "Explore",
				"items": [
					{"title": "Latest", "type": "link", "url": "/latest"},
					{"title": "General", "type": "category", "category_slug": "general",
					 "panel": {"source_type": "category_latest", "category_slug": "general", "limit": 6}},
					{"title": "Staff", "type": "category", "category_slug": "staff-lounge",
					 "visibility": {"trust_level_min": 3}}
				]
			}
		]
	}`
	queries := New(db)
	if _, err := queries.CreateProfile(ctx, "Starter", starter, true); err != nil {
		return fmt.Errorf("seeding starter profile: %w", err)
	}

	logger.Info("seeded demo data", "categories", len(categories), "topics", len(topics))
	return nil
}
