package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeJobsRepo struct {
	expireCutoff time.Time
	stuckCutoff  time.Time
	expireCalls  int
	stuckCalls   int
	err          error
}

func (f *fakeJobsRepo) ExpireStaleTransactions(ctx context.Context, cutoff time.Time) (int, error) {
	f.expireCalls++
	f.expireCutoff = cutoff
	return 3, f.err
}

func (f *fakeJobsRepo) FailStuckSettlements(ctx context.Context, cutoff time.Time) (int, error) {
	f.stuckCalls++
	f.stuckCutoff = cutoff
	return 1, f.err
}

func TestJobsUseConfiguredAges(t *testing.T) {
	repo := &fakeJobsRepo{}
	jobs := NewJobs(repo, testLogger(), 30*time.Minute, 15*time.Minute)
	jobs.clock = testClock

	jobs.ExpireStaleTransactions()
	if repo.expireCalls != 1 {
		t.Fatalf("expected one expiry sweep, got %d", repo.expireCalls)
	}
	if want := appTestNow.Add(-30 * time.Minute); !repo.expireCutoff.Equal(want) {
		t.Fatalf("expiry cutoff = %v, want %v", repo.expireCutoff, want)
	}

	jobs.RecoverStuckSettlements()
	if repo.stuckCalls != 1 {
		t.Fatalf("expected one recovery sweep, got %d", repo.stuckCalls)
	}
	if want := appTestNow.Add(-15 * time.Minute); !repo.stuckCutoff.Equal(want) {
		t.Fatalf("recovery cutoff = %v, want %v", repo.stuckCutoff, want)
	}
}

func TestJobsSwallowRepositoryErrors(t *testing.T) {
	repo := &fakeJobsRepo{err: errors.New("store unavailable")}
	jobs := NewJobs(repo, testLogger(), 30*time.Minute, 15*time.Minute)
	jobs.clock = testClock

	// Sweeps log and move on; a failing store must not panic the scheduler.
	jobs.ExpireStaleTransactions()
	jobs.RecoverStuckSettlements()
	if repo.expireCalls != 1 || repo.stuckCalls != 1 {
		t.Fatalf("expected both sweeps to run, got %d/%d", repo.expireCalls, repo.stuckCalls)
	}
}
