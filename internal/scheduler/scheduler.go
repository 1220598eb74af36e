package scheduler

import (
	"context"
	"log/slog"
	"time"

	"conduit/internal/domain"
)

type Reconciler interface {
	Reconcile(ctx context.Context) (*domain.ReconcileStats, error)
}

// Scheduler runs a reconcile pass immediately and then once per interval
// until ctx is cancelled.
type Scheduler struct {
	reconciler Reconciler
	interval   time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

func NewScheduler(reconciler Reconciler, interval time.Duration, logger *slog.Logger) *Scheduler {
	timeout := interval
	if timeout > 5*time.Minute {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		reconciler: reconciler,
		interval:   interval,
		timeout:    timeout,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.reconciler.Reconcile(runCtx); err != nil {
		s.logger.Error("reconcile failed", "error", err)
	}
}
