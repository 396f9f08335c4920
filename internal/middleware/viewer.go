// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for viewer resolution,
// admin authorization, and rate limiting.
package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/navkit/internal/nav"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyViewer is the context key for the resolved viewer.
const ContextKeyViewer ContextKey = "viewer"

// Viewer identity headers, injected by the platform gateway in front of
// this service. Requests without them are treated as anonymous.
const (
	HeaderViewerID         = "X-Viewer-Id"
	HeaderViewerTrustLevel = "X-Viewer-Trust-Level"
	HeaderViewerGroups     = "X-Viewer-Groups"
	HeaderViewerAdmin      = "X-Viewer-Admin"
)

// ResolveViewer extracts the viewer identity from gateway headers and
// stores it in the request context. Malformed values degrade to the
// anonymous viewer rather than failing the request.
func ResolveViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := nav.Viewer{}

		if raw := r.Header.Get(HeaderViewerID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				viewer.ID = id
				viewer.Authenticated = true
			}
		}
		if viewer.Authenticated {
			if tl, err := strconv.Atoi(r.Header.Get(HeaderViewerTrustLevel)); err == nil && tl > 0 {
				viewer.TrustLevel = tl
			}
			if groups := r.Header.Get(HeaderViewerGroups); groups != "" {
				for _, name := range strings.Split(groups, ",") {
					name = strings.TrimSpace(name)
					if name != "" {
						viewer.Groups = append(viewer.Groups, name)
					}
				}
			}
			viewer.Admin = r.Header.Get(HeaderViewerAdmin) == "true"
		}

		ctx := context.WithValue(r.Context(), ContextKeyViewer, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetViewer returns the viewer resolved for the request, anonymous when
// the middleware did not run.
func GetViewer(r *http.Request) nav.Viewer {
	viewer, _ := r.Context().Value(ContextKeyViewer).(nav.Viewer)
	return viewer
}

// RequireAdmin authorizes the administrative endpoints with a bearer
// token compared in constant time.
func RequireAdmin(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") ||
				subtle.ConstantTimeCompare([]byte(parts[1]), []byte(adminToken)) != 1 {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Admin authorization required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies a request for rate limiting: the viewer id when
// authenticated, otherwise the client IP.
func clientKey(r *http.Request) string {
	viewer := GetViewer(r)
	if viewer.Authenticated {
		return "u" + strconv.FormatInt(viewer.ID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip" + host
}
