// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/navkit/internal/nav"
)

func resolveViewerFor(t *testing.T, headers map[string]string) nav.Viewer {
	t.Helper()

	var got nav.Viewer
	handler := ResolveViewer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetViewer(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/nav/config", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestResolveViewer(t *testing.T) {
	viewer := resolveViewerFor(t, map[string]string{
		HeaderViewerID:         "42",
		HeaderViewerTrustLevel: "3",
		HeaderViewerGroups:     "staff, beta-testers ,",
		HeaderViewerAdmin:      "true",
	})

	if !viewer.Authenticated || viewer.ID != 42 {
		t.Errorf("viewer = %+v, want authenticated id 42", viewer)
	}
	if viewer.TrustLevel != 3 {
		t.Errorf("trust level = %d, want 3", viewer.TrustLevel)
	}
	if len(viewer.Groups) != 2 || viewer.Groups[0] != "staff" || viewer.Groups[1] != "beta-testers" {
		t.Errorf("groups = %v", viewer.Groups)
	}
	if !viewer.Admin {
		t.Error("admin flag not set")
	}
}

func TestResolveViewerAnonymous(t *testing.T) {
	viewer := resolveViewerFor(t, nil)
	if viewer.Authenticated || viewer.ID != 0 {
		t.Errorf("viewer = %+v, want anonymous", viewer)
	}
}

func TestResolveViewerMalformed(t *testing.T) {
	// A malformed id degrades the whole identity to anonymous: the
	// trust and admin headers must not apply without an authenticated id.
	viewer := resolveViewerFor(t, map[string]string{
		HeaderViewerID:         "not-a-number",
		HeaderViewerTrustLevel: "4",
		HeaderViewerAdmin:      "true",
	})
	if viewer.Authenticated || viewer.TrustLevel != 0 || viewer.Admin {
		t.Errorf("viewer = %+v, want anonymous", viewer)
	}

	viewer = resolveViewerFor(t, map[string]string{
		HeaderViewerID:         "7",
		HeaderViewerTrustLevel: "garbage",
	})
	if !viewer.Authenticated || viewer.TrustLevel != 0 {
		t.Errorf("viewer = %+v, want authenticated with trust 0", viewer)
	}
}

func TestGetViewerWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	viewer := GetViewer(req)
	if viewer.Authenticated {
		t.Errorf("viewer = %+v, want anonymous zero value", viewer)
	}
}

func TestRequireAdmin(t *testing.T) {
	const token = "super-secret-admin-token"
	handler := RequireAdmin(token)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"case-insensitive scheme", "bearer " + token, http.StatusNoContent},
		{"wrong token", "Bearer wrong", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"token only", token, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/nav/export", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	if got := clientKey(req); got != "ip203.0.113.9" {
		t.Errorf("anonymous key = %q", got)
	}

	ctxReq := req.WithContext(req.Context())
	handler := ResolveViewer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if got := clientKey(r); got != "u15" {
			t.Errorf("authenticated key = %q, want u15", got)
		}
	}))
	ctxReq.Header.Set(HeaderViewerID, "15")
	handler.ServeHTTP(httptest.NewRecorder(), ctxReq)
}
