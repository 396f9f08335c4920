// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

import (
	"database/sql"
	"time"
)

// NavigationProfile is a stored navigation configuration document.
// At most one profile should be active at a time; when several are,
// the most recently updated one wins.
type NavigationProfile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ProfileKey  string    `json:"profile_key"`
	ConfigJSON  string    `json:"config_json"`
	Active      bool      `json:"active"`
	CreatedByID sql.NullInt64
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileSummary is the lightweight view of a profile exposed by the
// export endpoint. It deliberately omits the raw document text.
type ProfileSummary struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ProfileKey string    `json:"profile_key"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Summary returns the exportable view of the profile.
func (p *NavigationProfile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:         p.ID,
		Name:       p.Name,
		ProfileKey: p.ProfileKey,
		UpdatedAt:  p.UpdatedAt,
	}
}
