/**
 * @description
 * Scheduled job implementations for the console-engine. The sweeps keep the
 * simulated dataset honest over time: stale payments expire instead of
 * sitting in INITIATED forever, and settlement batches abandoned mid-flight
 * (e.g. by a restart) are failed so operators see them.
 */

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/transfa/console-engine/internal/store"
)

// JobsRepository defines the store operations needed by the sweeps.
type JobsRepository interface {
	ExpireStaleTransactions(ctx context.Context, cutoff time.Time) (int, error)
	FailStuckSettlements(ctx context.Context, cutoff time.Time) (int, error)
}

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	repo             JobsRepository
	logger           *slog.Logger
	expiryAge        time.Duration
	stuckBatchMaxAge time.Duration
	clock            func() time.Time
}

// NewJobs creates a new Jobs runner.
func NewJobs(repo JobsRepository, logger *slog.Logger, expiryAge, stuckBatchMaxAge time.Duration) *Jobs {
	return &Jobs{
		repo:             repo,
		logger:           logger,
		expiryAge:        expiryAge,
		stuckBatchMaxAge: stuckBatchMaxAge,
		clock:            time.Now,
	}
}

// ExpireStaleTransactions moves payments stuck before completion past the
// configured age to EXPIRED.
func (j *Jobs) ExpireStaleTransactions() {
	ctx := context.Background()
	cutoff := j.clock().Add(-j.expiryAge)

	expired, err := j.repo.ExpireStaleTransactions(ctx, cutoff)
	if err != nil {
		j.logger.Error("transaction expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.Info("expired stale transactions", "count", expired, "cutoff", cutoff)
	}
}

// RecoverStuckSettlements fails settlement batches left PROCESSING past the
// configured age.
func (j *Jobs) RecoverStuckSettlements() {
	ctx := context.Background()
	cutoff := j.clock().Add(-j.stuckBatchMaxAge)

	failed, err := j.repo.FailStuckSettlements(ctx, cutoff)
	if err != nil {
		j.logger.Error("settlement recovery sweep failed", "error", err)
		return
	}
	if failed > 0 {
		j.logger.Warn("failed stuck settlement batches", "count", failed, "cutoff", cutoff)
	}
}

var _ JobsRepository = (store.Repository)(nil)
