// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package visitlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// retentionSchedule runs the prune nightly, shortly after midnight so
// the cutoff lands on a fresh day boundary.
const retentionSchedule = "30 0 * * *"

// RetentionJob prunes access-log entries older than the configured
// retention window on a nightly schedule. A retention of zero days
// disables pruning entirely.
type RetentionJob struct {
	repo   *Repository
	days   int
	logger *slog.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// NewRetentionJob creates the job. It does nothing until Start.
func NewRetentionJob(repo *Repository, days int, logger *slog.Logger) *RetentionJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionJob{
		repo:   repo,
		days:   days,
		logger: logger,
		now:    time.Now,
	}
}

// Start schedules the nightly prune. No-op when retention is disabled.
func (j *RetentionJob) Start() error {
	if j.days <= 0 {
		j.logger.Info("access log retention disabled")
		return nil
	}

	j.cron = cron.New()
	if _, err := j.cron.AddFunc(retentionSchedule, j.runOnce); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("access log retention scheduled",
		"schedule", retentionSchedule, "days", j.days)
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (j *RetentionJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}

func (j *RetentionJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := j.now().UTC().AddDate(0, 0, -j.days)
	removed, err := j.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("access log prune failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("access log pruned", "removed", removed, "cutoff", cutoff)
	}
}
