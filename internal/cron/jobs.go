package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lverne/lapwise/internal/catalog"
)

// SessionStore is the subset of the assistant session store needed by cron
// jobs. Defined here to avoid a dependency on the assistant package.
type SessionStore interface {
	Prune(maxIdle time.Duration) int
}

// SessionPruneJob removes sessions that have been idle longer than MaxIdle.
type SessionPruneJob struct {
	Store        SessionStore
	MaxIdle      time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "*/5 * * * *"
}

// Compile-time interface check.
var _ Job = (*SessionPruneJob)(nil)

// Name implements Job.
func (j *SessionPruneJob) Name() string { return "session_prune" }

// Schedule implements Job.
func (j *SessionPruneJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "*/5 * * * *"
}

// Run prunes sessions idle longer than MaxIdle.
func (j *SessionPruneJob) Run(_ context.Context) error {
	pruned := j.Store.Prune(j.MaxIdle)
	if pruned > 0 {
		j.Logger.Info("cron: pruned idle sessions", "count", pruned)
	}
	return nil
}

// CatalogReseedJob restores the bundled seed laptops when the catalog is
// empty, so an operator wiping the database does not leave the assistant
// with nothing to recommend.
type CatalogReseedJob struct {
	Store        catalog.Store
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "0 * * * *"
}

// Compile-time interface check.
var _ Job = (*CatalogReseedJob)(nil)

// Name implements Job.
func (j *CatalogReseedJob) Name() string { return "catalog_reseed" }

// Schedule implements Job.
func (j *CatalogReseedJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "0 * * * *"
}

// Run re-applies the seed if the catalog has gone empty.
func (j *CatalogReseedJob) Run(ctx context.Context) error {
	count, err := j.Store.Count(ctx)
	if err != nil {
		return fmt.Errorf("cron: catalog count: %w", err)
	}
	if count > 0 {
		return nil
	}

	j.Logger.Warn("cron: catalog empty, reseeding")
	if err := catalog.Seed(ctx, j.Store); err != nil {
		return fmt.Errorf("cron: catalog reseed: %w", err)
	}
	return nil
}
