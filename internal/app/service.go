/**
 * @description
 * This file contains the core business logic for the console-engine. The
 * `Service` struct is the operation surface the rendering shell calls into:
 * client onboarding, transaction queries and refunds, settlement processing
 * and data export. It coordinates the repository and pushes slow work
 * (settlement finalization) to background workers.
 *
 * Key features:
 * - Every public method takes a context and inserts a configurable artificial
 *   latency before touching the store, modeling a network/database round trip.
 * - RefundTransaction delegates the whole validate-insert-update sequence to
 *   the repository so it lands atomically.
 * - ProcessSettlement acknowledges immediately and completes asynchronously;
 *   callers observe the final batch state via subsequent reads.
 *
 * @dependencies
 * - github.com/google/uuid: For UUID generation.
 * - internal/domain, internal/store: For domain models and data access.
 */

package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
	"github.com/transfa/console-engine/internal/store"
)

// Options tunes the simulated behavior of the engine.
type Options struct {
	// Latency is slept before every operation touches the store.
	Latency time.Duration
	// SettlementDelay is how long a batch stays PROCESSING before finalizing.
	SettlementDelay time.Duration
	// SettlementFailurePercent is the chance (0-100) a batch finalizes FAILED.
	SettlementFailurePercent int
	// Rand drives the simulated settlement failures. Defaults to a
	// time-seeded source.
	Rand *rand.Rand
	// Clock is injectable for tests. Defaults to time.Now.
	Clock func() time.Time
}

// Service provides the core business logic for the back-office console.
type Service struct {
	repo   store.Repository
	logger *slog.Logger
	opts   Options

	rngMu sync.Mutex
	rng   *rand.Rand

	wg   sync.WaitGroup
	quit chan struct{}
	once sync.Once
}

// NewService creates a new console-engine service instance.
func NewService(repo store.Repository, logger *slog.Logger, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		repo:   repo,
		logger: logger,
		opts:   opts,
		rng:    rng,
		quit:   make(chan struct{}),
	}
}

// Close stops background settlement workers and waits for them to drain.
func (s *Service) Close() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// GetClients returns a paginated, filtered view over the client store.
func (s *Service) GetClients(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.Client], error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListClients(ctx, opts)
}

// CreateClient onboards a new client. Status always starts PENDING and the
// client code is generated, never supplied.
func (s *Service) CreateClient(ctx context.Context, params domain.CreateClientParams) (*domain.Client, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := s.opts.Clock()
	id := uuid.New()
	client := domain.Client{
		ID:           id,
		ClientCode:   domain.ClientCode(id),
		ClientName:   params.ClientName,
		Email:        params.Email,
		Phone:        params.Phone,
		BusinessType: params.BusinessType,
		Website:      params.Website,
		Status:       domain.ClientStatusPending,
		KYCStatus:    domain.KYCStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateClient(ctx, &client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client created", "client_id", client.ID, "client_code", client.ClientCode)
	return &client, nil
}

// UpdateClient merges a partial update into an existing client.
func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, params domain.UpdateClientParams) (*domain.Client, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return s.repo.UpdateClient(ctx, id, params)
}

// DeleteClient removes a client from the store.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.simulateLatency(ctx); err != nil {
		return err
	}
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", "client_id", id)
	return nil
}

// GetTransactions returns a paginated, filtered view over the transaction
// store.
func (s *Service) GetTransactions(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.Transaction], error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, opts)
}

// GetTransaction returns a single transaction by id.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindTransactionByID(ctx, id)
}

// RefundTransaction creates a refund against a successful transaction. The
// refund record and the balance update on the original land atomically; on
// any failure nothing is mutated.
func (s *Service) RefundTransaction(ctx context.Context, transactionID uuid.UUID, amount int64, reason string) (*domain.Transaction, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	refund, err := s.repo.ApplyRefund(ctx, transactionID, amount, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info("refund created",
		"refund_id", refund.ID,
		"parent_transaction_id", transactionID,
		"amount", amount,
	)
	return refund, nil
}

// GetSettlements returns a paginated, filtered view over the settlement
// store.
func (s *Service) GetSettlements(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.SettlementBatch], error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListSettlements(ctx, opts)
}

// ProcessSettlement kicks off payout of a PENDING batch. The batch flips to
// PROCESSING synchronously; completion (or simulated failure) happens in the
// background after the configured delay. The returned acknowledgement is not
// the final state.
func (s *Service) ProcessSettlement(ctx context.Context, batchID uuid.UUID) (*domain.SettlementAck, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	batch, err := s.repo.BeginSettlementProcessing(ctx, batchID)
	if err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go s.finalizeSettlementAfter(batch.ID)

	s.logger.Info("settlement processing started",
		"batch_id", batch.BatchID,
		"transactions", batch.TotalTransactions,
		"total_amount", batch.TotalAmount,
	)
	return &domain.SettlementAck{
		BatchID:          batch.ID,
		Status:           domain.SettlementStatusProcessing,
		EstimatedSeconds: int(s.opts.SettlementDelay / time.Second),
	}, nil
}

// finalizeSettlementAfter waits out the simulated processing delay and then
// completes or fails the batch. Shutdown via Close abandons the wait; the
// batch is left PROCESSING for the recovery sweep to pick up.
func (s *Service) finalizeSettlementAfter(batchID uuid.UUID) {
	defer s.wg.Done()

	if s.opts.SettlementDelay > 0 {
		timer := time.NewTimer(s.opts.SettlementDelay)
		defer timer.Stop()
		select {
		case <-s.quit:
			return
		case <-timer.C:
		}
	}

	ctx := context.Background()
	if s.drawSettlementFailure() {
		if err := s.repo.FailSettlement(ctx, batchID, "simulated payout failure"); err != nil {
			s.logger.Error("failed to mark settlement failed", "batch_id", batchID, "error", err)
			return
		}
		s.logger.Warn("settlement failed", "batch_id", batchID)
		return
	}

	utr := s.newUTR()
	if err := s.repo.CompleteSettlement(ctx, batchID, utr); err != nil {
		s.logger.Error("failed to complete settlement", "batch_id", batchID, "error", err)
		return
	}
	s.logger.Info("settlement completed", "batch_id", batchID, "utr", utr)
}

func (s *Service) drawSettlementFailure() bool {
	if s.opts.SettlementFailurePercent <= 0 {
		return false
	}
	if s.opts.SettlementFailurePercent >= 100 {
		return true
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(100) < s.opts.SettlementFailurePercent
}

func (s *Service) newUTR() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return fmt.Sprintf("UTR%012d", s.rng.Int63n(1_000_000_000_000))
}

// simulateLatency models the round trip the mock API pretends to make.
func (s *Service) simulateLatency(ctx context.Context) error {
	if s.opts.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.opts.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
