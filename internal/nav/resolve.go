// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"context"

	"github.com/olegiv/navkit/internal/model"
)

// Directory looks up the entities navigation targets refer to.
// Implementations return (nil, nil) for entities that do not exist;
// lookup errors are treated by the core as "not found".
type Directory interface {
	CategoryByID(ctx context.Context, id int64) (*model.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	TopicByID(ctx context.Context, id int64) (*model.Topic, error)
}

// findCategory resolves an item's category reference, id taking
// precedence over slug.
func (n *Normalizer) findCategory(ctx context.Context, categoryID int64, categorySlug string) *model.Category {
	return lookupCategory(ctx, n.dir, categoryID, categorySlug)
}

func (n *Normalizer) findTopic(ctx context.Context, topicID int64) *model.Topic {
	if n.dir == nil || topicID <= 0 {
		return nil
	}
	topic, err := n.dir.TopicByID(ctx, topicID)
	if err != nil {
		return nil
	}
	return topic
}

func lookupCategory(ctx context.Context, dir Directory, categoryID int64, categorySlug string) *model.Category {
	if dir == nil {
		return nil
	}
	if categoryID > 0 {
		category, err := dir.CategoryByID(ctx, categoryID)
		if err != nil {
			return nil
		}
		return category
	}
	if categorySlug != "" {
		category, err := dir.CategoryBySlug(ctx, categorySlug)
		if err != nil {
			return nil
		}
		return category
	}
	return nil
}

// resolveURL derives the viewer-independent default target for an item.
// Category, tag and topic items resolve to their canonical paths when the
// referenced entity exists, falling back to the author-supplied URL.
// Headings and dividers have no target.
func (n *Normalizer) resolveURL(ctx context.Context, item *Item) *string {
	switch item.Type {
	case ItemLink, ItemExternalLink:
		return item.URL
	case ItemCategory:
		if category := n.findCategory(ctx, item.CategoryID, item.CategorySlug); category != nil {
			return SanitizeURL(category.URL())
		}
		return item.URL
	case ItemTag:
		if item.Tag != "" {
			return SanitizeURL("/tag/" + item.Tag)
		}
		return item.URL
	case ItemTopic:
		if topic := n.findTopic(ctx, item.TopicID); topic != nil {
			return SanitizeURL(topic.RelativeURL())
		}
		return item.URL
	default:
		return nil
	}
}

// resolveURLForViewer recomputes an item's target with the viewer's
// permissions applied. Category and topic items whose entity is missing
// or hidden from the viewer get no target at all; other types keep their
// normalization-time resolution.
func resolveURLForViewer(ctx context.Context, dir Directory, viewer Viewer, item *Item) *string {
	switch item.Type {
	case ItemCategory:
		category := lookupCategory(ctx, dir, item.CategoryID, item.CategorySlug)
		if category == nil || !CanViewCategory(viewer, category) {
			return nil
		}
		return SanitizeURL(category.URL())
	case ItemTopic:
		if dir == nil || item.TopicID <= 0 {
			return nil
		}
		topic, err := dir.TopicByID(ctx, item.TopicID)
		if err != nil || topic == nil {
			return nil
		}
		var category *model.Category
		if topic.CategoryID.Valid {
			category = lookupCategory(ctx, dir, topic.CategoryID.Int64, "")
		}
		if !CanViewTopic(viewer, topic, category) {
			return nil
		}
		return SanitizeURL(topic.RelativeURL())
	default:
		if item.ResolvedURL != nil {
			return item.ResolvedURL
		}
		return item.URL
	}
}
