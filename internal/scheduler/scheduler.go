package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/ratelimit"
)

// Task is one unit of housekeeping run on every tick.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler owns the housekeeping loop: ticks on an interval and runs each task sequentially.
type Scheduler struct {
	tasks    []Task
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs all tasks at the given interval.
func NewScheduler(tasks []Task, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		tasks:    tasks,
		interval: interval,
		logger:   logger,
	}
}

// Run runs one immediate cycle, then ticks on the configured interval.
// It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"tasks", len(s.tasks),
	)

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

// runAll runs each task in order. A failing task does not stop the others.
func (s *Scheduler) runAll(ctx context.Context) {
	for _, t := range s.tasks {
		if ctx.Err() != nil {
			return
		}
		if err := t.Run(ctx); err != nil {
			s.logger.Error("task failed", "task", t.Name, "error", err)
		}
	}
}

// ArchiveCleanup deletes archived plans older than retention.
func ArchiveCleanup(store model.PlanStore, retention time.Duration, logger *slog.Logger) Task {
	return Task{
		Name: "archive-cleanup",
		Run: func(ctx context.Context) error {
			n, err := store.Cleanup(ctx, retention)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("removed expired plans", "count", n, "retention", retention.String())
			}
			return nil
		},
	}
}

// LimiterPrune drops stale per-client entries from l.
func LimiterPrune(l *ratelimit.Limiter, logger *slog.Logger) Task {
	return Task{
		Name: "limiter-prune",
		Run: func(context.Context) error {
			if n := l.Forget(); n > 0 {
				logger.Debug("pruned rate limiter keys", "count", n)
			}
			return nil
		},
	}
}
