/**
 * @description
 * Cron scheduler setup for the background sweeps.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron               *cron.Cron
	jobs               *Jobs
	logger             *slog.Logger
	expirySchedule     string
	settlementSchedule string
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, logger *slog.Logger, expirySchedule, settlementSchedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:               c,
		jobs:               jobs,
		logger:             logger,
		expirySchedule:     expirySchedule,
		settlementSchedule: settlementSchedule,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.expirySchedule, s.jobs.ExpireStaleTransactions); err != nil {
		s.logger.Error("failed to schedule transaction expiry sweep", "error", err)
	} else {
		s.logger.Info("scheduled transaction expiry sweep", "schedule", s.expirySchedule)
	}

	if _, err := s.cron.AddFunc(s.settlementSchedule, s.jobs.RecoverStuckSettlements); err != nil {
		s.logger.Error("failed to schedule settlement recovery sweep", "error", err)
	} else {
		s.logger.Info("scheduled settlement recovery sweep", "schedule", s.settlementSchedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
