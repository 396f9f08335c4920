// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/navkit/internal/store"
)

func TestPruneEvents(t *testing.T) {
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	now := time.Now().UTC()
	insert := func(createdAt time.Time) {
		_, err := db.Exec("INSERT INTO events (level, category, message, metadata, created_at) VALUES ('warning', 'system', 'old', '{}', ?)", createdAt)
		if err != nil {
			t.Fatalf("inserting event: %v", err)
		}
	}
	insert(now.AddDate(0, 0, -10))
	insert(now.AddDate(0, 0, -1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(db, logger, 7)
	if err := s.pruneEvents(); err != nil {
		t.Fatalf("pruneEvents: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("events after prune = %d, want 1", count)
	}
}

func TestStartStop(t *testing.T) {
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(db, logger, 0)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
