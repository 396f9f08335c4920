// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Category is a discussion category a topic belongs to. Restricted
// categories require an authenticated viewer with a sufficient trust level.
type Category struct {
	ID             int64
	Name           string
	Slug           string
	Color          string
	TextColor      string
	Position       int64
	ReadRestricted bool
	MinTrustLevel  int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// URL returns the canonical relative path for the category.
func (c *Category) URL() string {
	return fmt.Sprintf("/c/%s/%d", c.Slug, c.ID)
}

// Topic is a discussion thread.
type Topic struct {
	ID             int64
	Slug           string
	Title          string
	FancyTitle     string
	CategoryID     sql.NullInt64
	AuthorUsername string
	Excerpt        sql.NullString
	ImageURL       sql.NullString
	PostsCount     int64
	LikeCount      int64
	Views          int64
	PinnedGlobally bool
	PinnedAt       sql.NullTime
	Visible        bool
	CreatedAt      time.Time
	BumpedAt       time.Time
}

// RelativeURL returns the canonical relative path for the topic.
func (t *Topic) RelativeURL() string {
	return fmt.Sprintf("/t/%s/%d", t.Slug, t.ID)
}

// CategorySummary is the category fragment embedded in a TopicSummary.
type CategorySummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
	URL       string `json:"url"`
}

// TopicSummary is the serialized form of a topic returned in panel feeds.
type TopicSummary struct {
	ID             int64            `json:"id"`
	Slug           string           `json:"slug"`
	Title          string           `json:"title"`
	FancyTitle     string           `json:"fancy_title"`
	URL            string           `json:"url"`
	CreatedAt      time.Time        `json:"created_at"`
	BumpedAt       time.Time        `json:"bumped_at"`
	PostsCount     int64            `json:"posts_count"`
	LikeCount      int64            `json:"like_count"`
	Views          int64            `json:"views"`
	ImageURL       *string          `json:"image_url"`
	Excerpt        *string          `json:"excerpt"`
	AuthorUsername string           `json:"author_username"`
	Category       *CategorySummary `json:"category"`
}
