// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"strings"

	"github.com/olegiv/navkit/internal/model"
)

// Rule restricts a node's display to viewers matching login, trust level
// and group conditions. The zero value allows everyone.
type Rule struct {
	LoggedInOnly  bool     `json:"logged_in_only,omitempty"`
	LoggedOutOnly bool     `json:"logged_out_only,omitempty"`
	Groups        []string `json:"groups,omitempty"`
	TrustLevelMin int      `json:"trust_level_min,omitempty"`
}

// IsEmpty reports whether the rule places no restriction at all.
func (r Rule) IsEmpty() bool {
	return !r.LoggedInOnly && !r.LoggedOutOnly && len(r.Groups) == 0 && r.TrustLevelMin == 0
}

// Viewer is the requesting identity as handed over by the transport layer.
// The zero value is an anonymous viewer.
type Viewer struct {
	ID            int64
	Authenticated bool
	TrustLevel    int
	Groups        []string
	Admin         bool
}

// Context is the resolved authorization view of a Viewer used for rule
// evaluation. Group names are lower-cased; anonymous viewers carry trust
// level 0 and no groups.
type Context struct {
	Authenticated bool
	TrustLevel    int
	GroupNames    map[string]bool
}

// BuildContext resolves a viewer into an evaluation context.
func BuildContext(viewer Viewer) Context {
	ctx := Context{
		Authenticated: viewer.Authenticated,
		GroupNames:    map[string]bool{},
	}
	if !viewer.Authenticated {
		return ctx
	}
	ctx.TrustLevel = viewer.TrustLevel
	for _, name := range viewer.Groups {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			ctx.GroupNames[name] = true
		}
	}
	return ctx
}

// NormalizeVisibility extracts the recognized rule keys from an arbitrary
// decoded JSON value. Unknown keys are dropped; a non-object value yields
// the empty rule.
func NormalizeVisibility(raw any) Rule {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Rule{}
	}

	rule := Rule{
		LoggedInOnly:  asBool(obj["logged_in_only"]),
		LoggedOutOnly: asBool(obj["logged_out_only"]),
		TrustLevelMin: asInt(obj["trust_level_min"]),
	}
	if groups, ok := obj["groups"].([]any); ok {
		for _, g := range groups {
			name := strings.ToLower(strings.TrimSpace(asString(g)))
			if name != "" {
				rule.Groups = append(rule.Groups, name)
			}
		}
	}
	return rule
}

// asMap returns the rule in its decoded-JSON shape: string keys, []any
// groups, float64 trust level, zero fields omitted. Generic entities
// store visibility this way so a document serializes identically whether
// it was freshly normalized or came back through the byte cache.
func (r Rule) asMap() map[string]any {
	m := map[string]any{}
	if r.LoggedInOnly {
		m["logged_in_only"] = true
	}
	if r.LoggedOutOnly {
		m["logged_out_only"] = true
	}
	if len(r.Groups) > 0 {
		groups := make([]any, len(r.Groups))
		for i, g := range r.Groups {
			groups[i] = g
		}
		m["groups"] = groups
	}
	if r.TrustLevelMin != 0 {
		m["trust_level_min"] = float64(r.TrustLevelMin)
	}
	return m
}

// Allowed evaluates a visibility rule against a viewer context. Every
// condition present must pass; an empty rule always allows. The check is
// pure, so it is safe to call once per tree node per request.
func Allowed(rule Rule, ctx Context) bool {
	if rule.IsEmpty() {
		return true
	}
	if rule.LoggedInOnly && !ctx.Authenticated {
		return false
	}
	if rule.LoggedOutOnly && ctx.Authenticated {
		return false
	}
	if rule.TrustLevelMin > ctx.TrustLevel {
		return false
	}
	if len(rule.Groups) > 0 {
		if !ctx.Authenticated {
			return false
		}
		matched := false
		for _, g := range rule.Groups {
			if ctx.GroupNames[g] {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// CanViewCategory reports whether the viewer may see a category.
// Unrestricted categories are visible to everyone; restricted ones
// require an authenticated viewer meeting the category's trust floor.
func CanViewCategory(viewer Viewer, category *model.Category) bool {
	if category == nil {
		return false
	}
	if viewer.Admin {
		return true
	}
	if !category.ReadRestricted {
		return true
	}
	return viewer.Authenticated && int64(viewer.TrustLevel) >= category.MinTrustLevel
}

// CanViewTopic reports whether the viewer may see a topic within its
// category. Topics outside any category are governed by visibility alone.
func CanViewTopic(viewer Viewer, topic *model.Topic, category *model.Category) bool {
	if topic == nil {
		return false
	}
	if !topic.Visible && !viewer.Admin {
		return false
	}
	if !topic.CategoryID.Valid {
		return true
	}
	return CanViewCategory(viewer, category)
}
