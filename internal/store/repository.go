/**
 * @description
 * This file defines the `Repository` interface, the contract for all data
 * access required by the console-engine. The engine's business logic is
 * decoupled from the backing implementation (an in-memory store here), which
 * keeps the query and lifecycle logic testable against fixtures.
 *
 * Multi-step mutations with cross-record invariants (refund creation,
 * settlement completion) are repository methods so the implementation can
 * run them as a single critical section.
 *
 * @dependencies
 * - context, time: Standard Go libraries.
 * - github.com/google/uuid: For entity identifiers.
 * - internal/domain: For the engine's domain models.
 */

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
)

var (
	ErrClientNotFound      = fmt.Errorf("client not found: %w", domain.ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction not found: %w", domain.ErrNotFound)
	ErrSettlementNotFound  = fmt.Errorf("settlement batch not found: %w", domain.ErrNotFound)
)

// Seeder produces the synthetic dataset a store is populated with on first
// access. It is an interface so tests can swap deterministic fixtures in.
type Seeder interface {
	Clients(n int) []domain.Client
	Transactions(n int, clients []domain.Client) []domain.Transaction
	Settlements(transactions []domain.Transaction) []domain.SettlementBatch
}

// Repository defines the set of methods for interacting with the stores.
type Repository interface {
	// Client methods
	ListClients(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.Client], error)
	FindClientByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) error
	UpdateClient(ctx context.Context, id uuid.UUID, params domain.UpdateClientParams) (*domain.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// Transaction methods
	ListTransactions(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.Transaction], error)
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// ApplyRefund validates refundability, inserts the linked refund record
	// and updates the original's refunded balance atomically.
	ApplyRefund(ctx context.Context, transactionID uuid.UUID, amount int64, reason string) (*domain.Transaction, error)
	// ExpireStaleTransactions moves unterminated payments created before the
	// cutoff to EXPIRED and returns how many were moved.
	ExpireStaleTransactions(ctx context.Context, cutoff time.Time) (int, error)

	// Settlement methods
	ListSettlements(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.SettlementBatch], error)
	FindSettlementByID(ctx context.Context, id uuid.UUID) (*domain.SettlementBatch, error)
	// BeginSettlementProcessing transitions a PENDING batch to PROCESSING.
	BeginSettlementProcessing(ctx context.Context, id uuid.UUID) (*domain.SettlementBatch, error)
	// CompleteSettlement transitions a PROCESSING batch to COMPLETED and
	// marks every referenced transaction settled, in one critical section.
	CompleteSettlement(ctx context.Context, id uuid.UUID, utr string) error
	// FailSettlement transitions a PROCESSING batch to FAILED.
	FailSettlement(ctx context.Context, id uuid.UUID, reason string) error
	// FailStuckSettlements fails PROCESSING batches idle since before the
	// cutoff and returns how many were failed.
	FailStuckSettlements(ctx context.Context, cutoff time.Time) (int, error)

	// Snapshot methods, used by the metrics aggregator and exports
	SnapshotClients(ctx context.Context) ([]domain.Client, error)
	SnapshotTransactions(ctx context.Context) ([]domain.Transaction, error)
	SnapshotSettlements(ctx context.Context) ([]domain.SettlementBatch, error)

	// Reset empties every store and re-arms lazy seeding, for test isolation.
	Reset(ctx context.Context)
}
