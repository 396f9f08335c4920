// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/navkit/internal/model"
	"github.com/olegiv/navkit/internal/nav"
	"github.com/olegiv/navkit/internal/util"
)

// Queries provides the data access layer over a database handle.
// It implements nav.ProfileSource, nav.Directory and nav.TopicSource.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// ----------------------------------------------------------------------------
// Navigation profiles
// ----------------------------------------------------------------------------

const profileColumns = "id, name, profile_key, config_json, active, created_by_id, created_at, updated_at"

func scanProfile(row interface{ Scan(...any) error }) (*model.NavigationProfile, error) {
	var p model.NavigationProfile
	err := row.Scan(&p.ID, &p.Name, &p.ProfileKey, &p.ConfigJSON, &p.Active, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ActiveProfile returns the most recently updated active profile, or
// (nil, nil) when no profile is active.
func (q *Queries) ActiveProfile(ctx context.Context) (*model.NavigationProfile, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM navigation_profiles WHERE active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1")
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active profile: %w", err)
	}
	return profile, nil
}

// GetProfile returns a profile by id.
func (q *Queries) GetProfile(ctx context.Context, id int64) (*model.NavigationProfile, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM navigation_profiles WHERE id = ?", id)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("querying profile %d: %w", id, err)
	}
	return profile, nil
}

// ListProfiles returns all stored profiles, most recently updated first.
func (q *Queries) ListProfiles(ctx context.Context) ([]model.NavigationProfile, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM navigation_profiles ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.NavigationProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// CreateProfile stores a new profile. The profile key is derived from
// the name with a random suffix to keep it globally unique. When active
// is true, all other profiles are deactivated in the same transaction.
func (q *Queries) CreateProfile(ctx context.Context, name, configJSON string, active bool) (*model.NavigationProfile, error) {
	key := util.Slugify(name)
	if key == "" {
		key = "profile"
	}
	key = key + "-" + strings.Split(uuid.NewString(), "-")[0]

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if active {
		if _, err := tx.ExecContext(ctx, "UPDATE navigation_profiles SET active = 0 WHERE active = 1"); err != nil {
			return nil, fmt.Errorf("deactivating profiles: %w", err)
		}
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO navigation_profiles (name, profile_key, config_json, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		name, key, configJSON, active, now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading profile id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing profile: %w", err)
	}

	return q.GetProfile(ctx, id)
}

// ActivateProfile marks one profile as active and deactivates the rest.
func (q *Queries) ActivateProfile(ctx context.Context, id int64) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE navigation_profiles SET active = 0 WHERE active = 1"); err != nil {
		return fmt.Errorf("deactivating profiles: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE navigation_profiles SET active = 1, updated_at = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("activating profile %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking activation: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// ----------------------------------------------------------------------------
// Directory lookups (nav.Directory)
// ----------------------------------------------------------------------------

const categoryColumns = "id, name, slug, color, text_color, position, read_restricted, min_trust_level, created_at, updated_at"

func scanCategory(row interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Color, &c.TextColor, &c.Position,
		&c.ReadRestricted, &c.MinTrustLevel, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryByID returns a category, or (nil, nil) when absent.
func (q *Queries) CategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying category %d: %w", id, err)
	}
	return category, nil
}

// CategoryBySlug returns a category, or (nil, nil) when absent.
func (q *Queries) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE slug = ?", slug)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying category %q: %w", slug, err)
	}
	return category, nil
}

const topicColumns = "id, slug, title, fancy_title, category_id, author_username, excerpt, image_url, " +
	"posts_count, like_count, views, pinned_globally, pinned_at, visible, created_at, bumped_at"

func scanTopic(row interface{ Scan(...any) error }) (*model.Topic, error) {
	var t model.Topic
	err := row.Scan(&t.ID, &t.Slug, &t.Title, &t.FancyTitle, &t.CategoryID, &t.AuthorUsername,
		&t.Excerpt, &t.ImageURL, &t.PostsCount, &t.LikeCount, &t.Views,
		&t.PinnedGlobally, &t.PinnedAt, &t.Visible, &t.CreatedAt, &t.BumpedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TopicByID returns a topic, or (nil, nil) when absent.
func (q *Queries) TopicByID(ctx context.Context, id int64) (*model.Topic, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+topicColumns+" FROM topics WHERE id = ?", id)
	topic, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying topic %d: %w", id, err)
	}
	return topic, nil
}

// ----------------------------------------------------------------------------
// Panel topic queries (nav.TopicSource)
// ----------------------------------------------------------------------------

// PanelTopics executes a bounded, ordered, viewer-scoped topic query.
// The viewer filter is applied before any source-specific scoping, so a
// viewer never sees even a title for content they cannot access.
func (q *Queries) PanelTopics(ctx context.Context, query nav.TopicQuery) ([]model.TopicSummary, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT t.id, t.slug, t.title, t.fancy_title, t.author_username, t.excerpt, t.image_url,
		t.posts_count, t.like_count, t.views, t.created_at, t.bumped_at,
		c.id, c.name, c.slug, c.color, c.text_color
		FROM topics t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE 1 = 1`)

	var args []any
	if !query.Admin {
		sb.WriteString(" AND t.visible = 1")
		sb.WriteString(" AND (t.category_id IS NULL OR c.read_restricted = 0 OR (? = 1 AND c.min_trust_level <= ?))")
		authed := 0
		if query.Authenticated {
			authed = 1
		}
		args = append(args, authed, query.TrustLevel)
	}
	if query.CategoryID > 0 {
		sb.WriteString(" AND t.category_id = ?")
		args = append(args, query.CategoryID)
	}
	if query.Tag != "" {
		sb.WriteString(" AND EXISTS (SELECT 1 FROM topic_tags tt JOIN tags g ON g.id = tt.tag_id WHERE tt.topic_id = t.id AND g.name = ?)")
		args = append(args, query.Tag)
	}
	if !query.Since.IsZero() {
		sb.WriteString(" AND t.bumped_at >= ?")
		args = append(args, query.Since.UTC())
	}
	if query.FeaturedOnly {
		sb.WriteString(" AND (t.pinned_globally = 1 OR t.pinned_at IS NOT NULL)")
	}

	switch query.Order {
	case nav.OrderEngagement:
		sb.WriteString(" ORDER BY t.like_count DESC, t.views DESC, t.posts_count DESC")
	default:
		sb.WriteString(" ORDER BY t.bumped_at DESC")
	}

	limit := query.Limit
	if limit <= 0 || limit > nav.MaxServerLimit {
		limit = nav.MaxServerLimit
	}
	sb.WriteString(" LIMIT ?")
	args = append(args, limit)

	rows, err := q.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying panel topics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := []model.TopicSummary{}
	for rows.Next() {
		var s model.TopicSummary
		var excerpt, imageURL sql.NullString
		var catID sql.NullInt64
		var catName, catSlug, catColor, catTextColor sql.NullString

		err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.FancyTitle, &s.AuthorUsername, &excerpt, &imageURL,
			&s.PostsCount, &s.LikeCount, &s.Views, &s.CreatedAt, &s.BumpedAt,
			&catID, &catName, &catSlug, &catColor, &catTextColor)
		if err != nil {
			return nil, fmt.Errorf("scanning panel topic: %w", err)
		}

		s.URL = fmt.Sprintf("/t/%s/%d", s.Slug, s.ID)
		if excerpt.Valid {
			s.Excerpt = &excerpt.String
		}
		if imageURL.Valid {
			s.ImageURL = &imageURL.String
		}
		if catID.Valid {
			s.Category = &model.CategorySummary{
				ID:        catID.Int64,
				Name:      catName.String,
				Slug:      catSlug.String,
				Color:     catColor.String,
				TextColor: catTextColor.String,
				URL:       fmt.Sprintf("/c/%s/%d", catSlug.String, catID.Int64),
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ----------------------------------------------------------------------------
// Events
// ----------------------------------------------------------------------------

// InsertEvent appends an event log entry.
func (q *Queries) InsertEvent(ctx context.Context, level, category, message, metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)",
		level, category, message, metadata, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// DeleteEventsBefore removes event log entries created before cutoff and
// returns the number deleted.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	return res.RowsAffected()
}

var (
	_ nav.ProfileSource = (*Queries)(nil)
	_ nav.Directory     = (*Queries)(nil)
	_ nav.TopicSource   = (*Queries)(nil)
)
