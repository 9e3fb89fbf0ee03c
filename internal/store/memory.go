/**
 * @description
 * In-memory implementation of the Repository interface. Each entity lives in
 * one newest-first slice, lazily seeded on first access from the injected
 * Seeder. A single mutex guards all three collections: cross-record
 * invariants (refund balance vs. the new refund record, batch completion vs.
 * settled flags) need atomicity at the store level, so one lock beats
 * per-record locking here.
 *
 * All reads hand out copies; callers never hold a pointer into the store.
 */

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
)

// Defaults for the lazily seeded dataset sizes.
const (
	DefaultSeedClients      = 500
	DefaultSeedTransactions = 1000
)

// MemoryConfig tunes a MemoryRepository.
type MemoryConfig struct {
	SeedClients      int              // number of clients seeded on first access
	SeedTransactions int              // number of transactions seeded on first access
	Clock            func() time.Time // injectable for tests
}

// MemoryRepository is the process-wide system of record. It is constructed
// once at service start and injected into every component that needs it;
// Reset gives tests a clean slate.
type MemoryRepository struct {
	mu     sync.Mutex
	seeder Seeder
	now    func() time.Time

	seedClients      int
	seedTransactions int

	clients      []domain.Client
	transactions []domain.Transaction
	settlements  []domain.SettlementBatch

	clientsSeeded      bool
	transactionsSeeded bool
	settlementsSeeded  bool
}

// NewMemoryRepository creates an empty repository; stores fill lazily on
// first access.
func NewMemoryRepository(seeder Seeder, cfg MemoryConfig) *MemoryRepository {
	if cfg.SeedClients <= 0 {
		cfg.SeedClients = DefaultSeedClients
	}
	if cfg.SeedTransactions <= 0 {
		cfg.SeedTransactions = DefaultSeedTransactions
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &MemoryRepository{
		seeder:           seeder,
		now:              cfg.Clock,
		seedClients:      cfg.SeedClients,
		seedTransactions: cfg.SeedTransactions,
	}
}

// ensureClientsLocked populates the client store on first access. Idempotent
// after the first call even if records are later deleted.
func (r *MemoryRepository) ensureClientsLocked() {
	if r.clientsSeeded {
		return
	}
	r.clients = r.seeder.Clients(r.seedClients)
	r.clientsSeeded = true
}

func (r *MemoryRepository) ensureTransactionsLocked() {
	if r.transactionsSeeded {
		return
	}
	r.ensureClientsLocked()
	r.transactions = r.seeder.Transactions(r.seedTransactions, r.clients)
	r.transactionsSeeded = true
}

func (r *MemoryRepository) ensureSettlementsLocked() {
	if r.settlementsSeeded {
		return
	}
	r.ensureTransactionsLocked()
	r.settlements = r.seeder.Settlements(r.transactions)
	r.settlementsSeeded = true
}

// ListClients returns a filtered, paginated view over the client store.
func (r *MemoryRepository) ListClients(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.Client], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureClientsLocked()

	filtered := filterItems(r.clients, func(c *domain.Client) bool {
		if !matchesAnyFold(opts.Search, c.ClientName, c.Email, c.ClientCode) {
			return false
		}
		if opts.Status != "" && string(c.Status) != opts.Status {
			return false
		}
		return inRange(c.CreatedAt, opts.From, opts.To)
	})
	return paginate(filtered, opts.Page, opts.Limit), nil
}

// FindClientByID returns a copy of the client or ErrClientNotFound.
func (r *MemoryRepository) FindClientByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureClientsLocked()

	c := r.findClientLocked(id)
	if c == nil {
		return nil, ErrClientNotFound
	}
	out := *c
	return &out, nil
}

// CreateClient prepends the record so the store stays newest-first.
func (r *MemoryRepository) CreateClient(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureClientsLocked()

	now := r.now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now
	r.clients = append([]domain.Client{*client}, r.clients...)
	return nil
}

// UpdateClient merges the non-nil fields of params into the stored record.
func (r *MemoryRepository) UpdateClient(ctx context.Context, id uuid.UUID, params domain.UpdateClientParams) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureClientsLocked()

	c := r.findClientLocked(id)
	if c == nil {
		return nil, ErrClientNotFound
	}

	if params.ClientName != nil {
		c.ClientName = *params.ClientName
	}
	if params.Email != nil {
		c.Email = *params.Email
	}
	if params.Phone != nil {
		c.Phone = *params.Phone
	}
	if params.BusinessType != nil {
		c.BusinessType = *params.BusinessType
	}
	if params.Website != nil {
		c.Website = *params.Website
	}
	if params.Status != nil {
		c.Status = *params.Status
	}
	if params.KYCStatus != nil {
		c.KYCStatus = *params.KYCStatus
	}
	if params.SettlementCycle != nil {
		c.SettlementCycle = *params.SettlementCycle
	}
	c.UpdatedAt = r.now()

	out := *c
	return &out, nil
}

// DeleteClient removes the record by id.
func (r *MemoryRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureClientsLocked()

	for i := range r.clients {
		if r.clients[i].ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return ErrClientNotFound
}

// ListTransactions returns a filtered, paginated view over the transaction
// store.
func (r *MemoryRepository) ListTransactions(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.Transaction], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureTransactionsLocked()

	filtered := filterItems(r.transactions, func(t *domain.Transaction) bool {
		if !matchesAnyFold(opts.Search, t.TransactionID, t.ClientName) {
			return false
		}
		if opts.Status != "" && string(t.Status) != opts.Status {
			return false
		}
		if opts.ClientID != uuid.Nil && t.ClientID != opts.ClientID {
			return false
		}
		return inRange(t.CreatedAt, opts.From, opts.To)
	})
	return paginate(filtered, opts.Page, opts.Limit), nil
}

// FindTransactionByID returns a copy of the transaction or
// ErrTransactionNotFound.
func (r *MemoryRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureTransactionsLocked()

	t := r.findTransactionLocked(id)
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	out := *t
	return &out, nil
}

// ApplyRefund runs the whole refund sequence in one critical section: the
// new refund record and the balance update on the original either both land
// or neither does.
func (r *MemoryRepository) ApplyRefund(ctx context.Context, transactionID uuid.UUID, amount int64, reason string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureTransactionsLocked()

	original := r.findTransactionLocked(transactionID)
	if original == nil {
		return nil, ErrTransactionNotFound
	}
	if amount <= 0 {
		return nil, fmt.Errorf("refund amount must be positive: %w", domain.ErrInvalidArgument)
	}
	// Balance is checked before status so a fully refunded transaction
	// reports an exceeded amount rather than a state error.
	if amount > original.RefundableAmount() {
		return nil, fmt.Errorf("refund amount cannot exceed transaction amount: %w", domain.ErrInvalidArgument)
	}
	if !original.IsRefundable() {
		return nil, fmt.Errorf("only successful transactions can be refunded (status %s): %w", original.Status, domain.ErrInvalidState)
	}

	now := r.now()
	refundID := uuid.New()
	parentID := original.ID
	refund := domain.Transaction{
		ID:                  refundID,
		TransactionID:       domain.TransactionRef(refundID),
		ClientID:            original.ClientID,
		ClientName:          original.ClientName,
		Type:                domain.TxTypeRefund,
		Method:              original.Method,
		Amount:              amount,
		NetAmount:           amount,
		Currency:            original.Currency,
		Status:              domain.TxStatusProcessing,
		ParentTransactionID: &parentID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if reason != "" {
		refund.RefundReason = &reason
	}

	r.transactions = append([]domain.Transaction{refund}, r.transactions...)

	// The slice header changed above, re-resolve the original before mutating.
	original = r.findTransactionLocked(transactionID)
	original.RefundedAmount += amount
	if original.RefundedAmount == original.Amount {
		original.Status = domain.TxStatusRefunded
	} else {
		original.Status = domain.TxStatusPartiallyRefunded
	}
	original.UpdatedAt = now

	out := refund
	return &out, nil
}

// ExpireStaleTransactions moves unterminated forward payments created before
// the cutoff to EXPIRED.
func (r *MemoryRepository) ExpireStaleTransactions(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureTransactionsLocked()

	now := r.now()
	expired := 0
	for i := range r.transactions {
		t := &r.transactions[i]
		if t.Type != domain.TxTypePayment {
			continue
		}
		if t.Status != domain.TxStatusInitiated && t.Status != domain.TxStatusPending {
			continue
		}
		if !t.CreatedAt.Before(cutoff) {
			continue
		}
		t.Status = domain.TxStatusExpired
		t.UpdatedAt = now
		expired++
	}
	return expired, nil
}

// ListSettlements returns a filtered, paginated view over the settlement
// store.
func (r *MemoryRepository) ListSettlements(ctx context.Context, opts domain.ListOptions) (*domain.Page[domain.SettlementBatch], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	filtered := filterItems(r.settlements, func(b *domain.SettlementBatch) bool {
		if !matchesAnyFold(opts.Search, b.BatchID, b.ClientName) {
			return false
		}
		if opts.Status != "" && string(b.Status) != opts.Status {
			return false
		}
		if opts.ClientID != uuid.Nil && b.ClientID != opts.ClientID {
			return false
		}
		return inRange(b.CreatedAt, opts.From, opts.To)
	})
	return paginate(filtered, opts.Page, opts.Limit), nil
}

// FindSettlementByID returns a copy of the batch or ErrSettlementNotFound.
func (r *MemoryRepository) FindSettlementByID(ctx context.Context, id uuid.UUID) (*domain.SettlementBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	b := r.findSettlementLocked(id)
	if b == nil {
		return nil, ErrSettlementNotFound
	}
	out := r.copySettlementLocked(b)
	return &out, nil
}

// BeginSettlementProcessing transitions a PENDING batch to PROCESSING.
func (r *MemoryRepository) BeginSettlementProcessing(ctx context.Context, id uuid.UUID) (*domain.SettlementBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	b := r.findSettlementLocked(id)
	if b == nil {
		return nil, ErrSettlementNotFound
	}
	if b.Status != domain.SettlementStatusPending {
		return nil, fmt.Errorf("settlement batch is %s, not PENDING: %w", b.Status, domain.ErrInvalidState)
	}
	b.Status = domain.SettlementStatusProcessing
	b.UpdatedAt = r.now()

	out := r.copySettlementLocked(b)
	return &out, nil
}

// CompleteSettlement finalizes a PROCESSING batch and marks every referenced
// transaction settled. Batch flip and settled flags land together.
func (r *MemoryRepository) CompleteSettlement(ctx context.Context, id uuid.UUID, utr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	b := r.findSettlementLocked(id)
	if b == nil {
		return ErrSettlementNotFound
	}
	if b.Status != domain.SettlementStatusProcessing {
		return fmt.Errorf("settlement batch is %s, not PROCESSING: %w", b.Status, domain.ErrInvalidState)
	}

	now := r.now()
	b.Status = domain.SettlementStatusCompleted
	b.ProcessedAt = &now
	b.UpdatedAt = now
	if utr != "" {
		b.UTR = &utr
	}

	settled := make(map[uuid.UUID]bool, len(b.TransactionIDs))
	for _, txID := range b.TransactionIDs {
		settled[txID] = true
	}
	for i := range r.transactions {
		t := &r.transactions[i]
		if settled[t.ID] && !t.IsSettled {
			t.IsSettled = true
			settledAt := now
			t.SettledAt = &settledAt
			t.UpdatedAt = now
		}
	}
	return nil
}

// FailSettlement moves a PROCESSING batch to FAILED with a reason.
func (r *MemoryRepository) FailSettlement(ctx context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	b := r.findSettlementLocked(id)
	if b == nil {
		return ErrSettlementNotFound
	}
	if b.Status != domain.SettlementStatusProcessing {
		return fmt.Errorf("settlement batch is %s, not PROCESSING: %w", b.Status, domain.ErrInvalidState)
	}

	now := r.now()
	b.Status = domain.SettlementStatusFailed
	b.UpdatedAt = now
	if reason != "" {
		b.FailureReason = &reason
	}
	return nil
}

// FailStuckSettlements fails PROCESSING batches idle since before the cutoff.
func (r *MemoryRepository) FailStuckSettlements(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	now := r.now()
	failed := 0
	reason := "processing timed out"
	for i := range r.settlements {
		b := &r.settlements[i]
		if b.Status != domain.SettlementStatusProcessing || !b.UpdatedAt.Before(cutoff) {
			continue
		}
		b.Status = domain.SettlementStatusFailed
		b.FailureReason = &reason
		b.UpdatedAt = now
		failed++
	}
	return failed, nil
}

// SnapshotClients returns a copy of the full client store.
func (r *MemoryRepository) SnapshotClients(ctx context.Context) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureClientsLocked()

	out := make([]domain.Client, len(r.clients))
	copy(out, r.clients)
	return out, nil
}

// SnapshotTransactions returns a copy of the full transaction store.
func (r *MemoryRepository) SnapshotTransactions(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureTransactionsLocked()

	out := make([]domain.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out, nil
}

// SnapshotSettlements returns a copy of the full settlement store.
func (r *MemoryRepository) SnapshotSettlements(ctx context.Context) ([]domain.SettlementBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSettlementsLocked()

	out := make([]domain.SettlementBatch, len(r.settlements))
	for i := range r.settlements {
		out[i] = r.copySettlementLocked(&r.settlements[i])
	}
	return out, nil
}

// Reset empties every store and re-arms lazy seeding.
func (r *MemoryRepository) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients = nil
	r.transactions = nil
	r.settlements = nil
	r.clientsSeeded = false
	r.transactionsSeeded = false
	r.settlementsSeeded = false
}

func (r *MemoryRepository) findClientLocked(id uuid.UUID) *domain.Client {
	for i := range r.clients {
		if r.clients[i].ID == id {
			return &r.clients[i]
		}
	}
	return nil
}

func (r *MemoryRepository) findTransactionLocked(id uuid.UUID) *domain.Transaction {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			return &r.transactions[i]
		}
	}
	return nil
}

func (r *MemoryRepository) findSettlementLocked(id uuid.UUID) *domain.SettlementBatch {
	for i := range r.settlements {
		if r.settlements[i].ID == id {
			return &r.settlements[i]
		}
	}
	return nil
}

// copySettlementLocked deep-copies the TransactionIDs slice so callers
// cannot reach back into the store.
func (r *MemoryRepository) copySettlementLocked(b *domain.SettlementBatch) domain.SettlementBatch {
	out := *b
	out.TransactionIDs = append([]uuid.UUID(nil), b.TransactionIDs...)
	return out
}
