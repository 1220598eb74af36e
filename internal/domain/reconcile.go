package domain

import "time"

// ReconcileStats reports one pass of the favorites counter repair.
type ReconcileStats struct {
	Corrected int64
	Duration  time.Duration
}
