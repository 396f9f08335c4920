// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"context"
	"time"

	"github.com/olegiv/navkit/internal/cache"
	"github.com/olegiv/navkit/internal/model"
)

// fakeDirectory serves a fixed set of categories and topics.
type fakeDirectory struct {
	categories []*model.Category
	topics     []*model.Topic
}

func (d *fakeDirectory) CategoryByID(_ context.Context, id int64) (*model.Category, error) {
	for _, c := range d.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) CategoryBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range d.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) TopicByID(_ context.Context, id int64) (*model.Topic, error) {
	for _, t := range d.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// fakeProfileSource returns a fixed active profile, or an error.
type fakeProfileSource struct {
	profile *model.NavigationProfile
	err     error
}

func (s *fakeProfileSource) ActiveProfile(_ context.Context) (*model.NavigationProfile, error) {
	return s.profile, s.err
}

// fakeTopicSource records the last query and returns canned summaries.
type fakeTopicSource struct {
	lastQuery TopicQuery
	topics    []model.TopicSummary
	err       error
}

func (s *fakeTopicSource) PanelTopics(_ context.Context, q TopicQuery) ([]model.TopicSummary, error) {
	s.lastQuery = q
	return s.topics, s.err
}

func newTestCache() cache.Cacher {
	return cache.NewSimpleMemoryCache(time.Minute)
}
