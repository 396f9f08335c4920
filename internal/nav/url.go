// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"net/url"
	"strings"
)

// safeSchemes are the absolute-URL schemes navigation targets may use.
var safeSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// SanitizeURL validates an author-supplied navigation target. Relative
// paths are accepted as-is; absolute URLs are accepted only when their
// scheme is http, https, mailto or tel. Anything else, including
// javascript: URLs and unparseable input, yields nil.
func SanitizeURL(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "/") {
		return &trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil
	}
	// url.Parse lower-cases the scheme; only the lower-case spelling is
	// allowed, so check the author's original text.
	if safeSchemes[parsed.Scheme] && strings.HasPrefix(trimmed, parsed.Scheme+":") {
		return &trimmed
	}
	return nil
}
