package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conduit/internal/domain"
)

// Reconciler rewrites favorites_count wherever it disagrees with the
// favorites edges.
type Reconciler struct {
	favorites FavoriteStore
	logger    *slog.Logger
}

func NewReconciler(favorites FavoriteStore, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		favorites: favorites,
		logger:    logger.With("component", "reconciler"),
	}
}

func (r *Reconciler) Reconcile(ctx context.Context) (*domain.ReconcileStats, error) {
	start := time.Now()

	corrected, err := r.favorites.Reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile favorites: %w", err)
	}

	stats := &domain.ReconcileStats{
		Corrected: corrected,
		Duration:  time.Since(start),
	}

	if corrected > 0 {
		r.logger.Warn("favorites counts drifted", "corrected", corrected)
	}
	r.logger.Info("reconcile completed",
		"corrected", stats.Corrected,
		"duration", stats.Duration,
	)
	return stats, nil
}
