// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/olegiv/navkit/internal/cache"
	"github.com/olegiv/navkit/internal/model"
)

// timeWindows maps each time range to its fixed lookback duration.
// RangeAll has no lower bound.
var timeWindows = map[TimeRange]time.Duration{
	RangeDaily:     24 * time.Hour,
	RangeWeekly:    7 * 24 * time.Hour,
	RangeMonthly:   30 * 24 * time.Hour,
	RangeQuarterly: 90 * 24 * time.Hour,
	RangeYearly:    365 * 24 * time.Hour,
}

// PanelRequest carries the loosely-typed query fields of a panel fetch.
// Every field is optional; invalid values fall back to defaults during
// normalization, never to an error.
type PanelRequest struct {
	SourceType   string
	CategorySlug string
	CategoryID   int64
	Tag          string
	TimeRange    string
	Limit        int
}

// PanelSource is the normalized form of a PanelRequest, echoed back in
// the response. Its canonical JSON serialization is the cache-key input,
// so field order must stay stable.
type PanelSource struct {
	SourceType   SourceType `json:"source_type"`
	CategorySlug *string    `json:"category_slug"`
	CategoryID   *int64     `json:"category_id"`
	Tag          *string    `json:"tag"`
	TimeRange    TimeRange  `json:"time_range"`
	Limit        int        `json:"limit"`
}

// PanelResult is one panel's content feed.
type PanelResult struct {
	Source PanelSource          `json:"source"`
	Topics []model.TopicSummary `json:"topics"`
}

// FeedOrder selects the ordering of a panel topic query.
type FeedOrder int

const (
	// OrderActivity sorts by last-activity timestamp descending.
	OrderActivity FeedOrder = iota
	// OrderEngagement sorts by engagement score descending, breaking
	// ties by view count, then reply count.
	OrderEngagement
)

// TopicQuery describes a bounded, ordered, viewer-scoped topic fetch.
// The implementation must pre-filter to topics the viewer is permitted
// to see before applying any of the optional scopes.
type TopicQuery struct {
	Authenticated bool
	TrustLevel    int
	Admin         bool
	CategoryID    int64     // 0 = all categories
	Tag           string    // "" = no tag scoping
	Since         time.Time // zero = no lower bound
	FeaturedOnly  bool      // globally or category pinned topics only
	Order         FeedOrder
	Limit         int
}

// TopicSource executes panel topic queries against the content store.
type TopicSource interface {
	PanelTopics(ctx context.Context, q TopicQuery) ([]model.TopicSummary, error)
}

// FeedQueryOptions configures a FeedQuery.
type FeedQueryOptions struct {
	Topics        TopicSource
	Directory     Directory
	Cache         cache.Cacher
	MaxPanelItems int
	TTL           time.Duration
	Logger        *slog.Logger
}

// FeedQuery turns panel descriptors into bounded, ordered, cached sets
// of content items.
type FeedQuery struct {
	topics        TopicSource
	dir           Directory
	results       *cache.TypedCache[PanelResult]
	maxPanelItems int
	logger        *slog.Logger
}

// NewFeedQuery creates a FeedQuery.
func NewFeedQuery(opts FeedQueryOptions) *FeedQuery {
	maxItems := opts.MaxPanelItems
	if maxItems <= 0 || maxItems > MaxServerLimit {
		maxItems = MaxServerLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedQuery{
		topics:        opts.Topics,
		dir:           opts.Directory,
		results:       cache.NewTypedCache[PanelResult](opts.Cache, opts.TTL),
		maxPanelItems: maxItems,
		logger:        logger,
	}
}

// Fetch returns the content feed for one panel. Results are cached per
// viewer identity and normalized request hash; unresolvable or
// unauthorized scopes yield an empty feed, never an error.
func (f *FeedQuery) Fetch(ctx context.Context, viewer Viewer, req PanelRequest) PanelResult {
	normalized := f.normalizeRequest(req)

	userKey := "anon"
	if viewer.Authenticated {
		userKey = strconv.FormatInt(viewer.ID, 10)
	}
	payload, _ := json.Marshal(normalized)
	key := "nav:panel:v1:user:" + userKey + ":" + contentHash(payload)

	result, err := f.results.GetOrSet(ctx, key, func() (*PanelResult, error) {
		r := f.compute(ctx, viewer, normalized)
		return &r, nil
	})
	if err != nil || result == nil {
		return PanelResult{Source: normalized, Topics: []model.TopicSummary{}}
	}
	return *result
}

func (f *FeedQuery) normalizeRequest(req PanelRequest) PanelSource {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultPanelLimit
	}
	limit = clamp(limit, 1, f.maxPanelItems)

	source := PanelSource{
		SourceType: safeEnum(SourceType(req.SourceType), allowedSources, SourceLatest),
		TimeRange:  safeEnum(TimeRange(req.TimeRange), allowedTimeRanges, RangeWeekly),
		Limit:      limit,
	}
	if req.CategoryID > 0 {
		id := req.CategoryID
		source.CategoryID = &id
	}
	source.CategorySlug = presence(req.CategorySlug)
	source.Tag = presence(req.Tag)
	return source
}

func (f *FeedQuery) compute(ctx context.Context, viewer Viewer, source PanelSource) PanelResult {
	result := PanelResult{Source: source, Topics: []model.TopicSummary{}}

	q := TopicQuery{
		Authenticated: viewer.Authenticated,
		TrustLevel:    viewer.TrustLevel,
		Admin:         viewer.Admin,
		Limit:         source.Limit,
	}

	switch source.SourceType {
	case SourceCategoryLatest:
		category := f.panelCategory(ctx, viewer, source)
		if category == nil {
			return result
		}
		q.CategoryID = category.ID
		q.Order = OrderActivity
	case SourceCategoryTop:
		category := f.panelCategory(ctx, viewer, source)
		if category == nil {
			return result
		}
		q.CategoryID = category.ID
		q.Since = windowStart(source.TimeRange)
		q.Order = OrderEngagement
	case SourceTagLatest:
		if source.Tag == nil {
			return result
		}
		q.Tag = *source.Tag
		q.Order = OrderActivity
	case SourceFeatured:
		// Pinned content is evergreen; the time window does not apply.
		q.FeaturedOnly = true
		q.Order = OrderActivity
	default:
		q.Since = windowStart(source.TimeRange)
		q.Order = OrderActivity
	}

	topics, err := f.topics.PanelTopics(ctx, q)
	if err != nil {
		f.logger.Warn("panel topic query failed, serving empty feed", "source_type", source.SourceType, "error", err)
		return result
	}
	if source.SourceType == SourceFeatured {
		for i := range topics {
			topics[i].Excerpt = nil
		}
	}
	if topics != nil {
		result.Topics = topics
	}
	return result
}

// panelCategory resolves the panel's category scope, nil when the
// category is missing or hidden from the viewer. Panels degrade to "no
// content", never to a visible-but-wrong scope.
func (f *FeedQuery) panelCategory(ctx context.Context, viewer Viewer, source PanelSource) *model.Category {
	var id int64
	if source.CategoryID != nil {
		id = *source.CategoryID
	}
	var slug string
	if source.CategorySlug != nil {
		slug = *source.CategorySlug
	}
	category := lookupCategory(ctx, f.dir, id, slug)
	if category == nil || !CanViewCategory(viewer, category) {
		return nil
	}
	return category
}

// windowStart converts a time range into the lower bound of the panel
// query, zero for RangeAll.
func windowStart(tr TimeRange) time.Time {
	window, ok := timeWindows[tr]
	if !ok {
		return time.Time{}
	}
	return time.Now().Add(-window)
}
