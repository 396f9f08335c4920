// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance tasks.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/navkit/internal/store"
)

// Scheduler handles scheduled maintenance like event log pruning.
type Scheduler struct {
	queries       *store.Queries
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, retentionDays int) *Scheduler {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &Scheduler{
		queries:       store.New(db),
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start begins the scheduler with a daily event log pruning job.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.pruneEvents(); err != nil {
			s.logger.Error("failed to prune event log", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneEvents deletes event log rows past the retention window.
func (s *Scheduler) pruneEvents() error {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.queries.DeleteEventsBefore(context.Background(), cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("pruned event log", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}
