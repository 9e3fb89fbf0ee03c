/**
 * @description
 * Settlement batch domain model. A batch groups successful transactions into
 * one payout cycle and walks PENDING -> PROCESSING -> COMPLETED|FAILED.
 * Transactions referenced by a completed batch are marked settled.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// SettlementStatus is the processing state of a settlement batch.
type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "PENDING"
	SettlementStatusProcessing SettlementStatus = "PROCESSING"
	SettlementStatusCompleted  SettlementStatus = "COMPLETED"
	SettlementStatusFailed     SettlementStatus = "FAILED"
)

// SettlementBatch groups transactions processed together into a single payout.
type SettlementBatch struct {
	ID                uuid.UUID        `json:"id"`
	BatchID           string           `json:"batch_id"` // human-readable reference, e.g. SETTLE-...
	ClientID          uuid.UUID        `json:"client_id"`
	ClientName        string           `json:"client_name,omitempty"`
	Status            SettlementStatus `json:"status"`
	TotalAmount       int64            `json:"total_amount"` // in kobo
	TotalFee          int64            `json:"total_fee"`    // in kobo
	TotalTransactions int              `json:"total_transactions"`
	TransactionIDs    []uuid.UUID      `json:"transaction_ids"`
	UTR               *string          `json:"utr,omitempty"` // bank reference, set on completion
	FailureReason     *string          `json:"failure_reason,omitempty"`
	ProcessedAt       *time.Time       `json:"processed_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// SettlementAck is the immediate acknowledgement returned by ProcessSettlement.
// The final batch state is only observable via subsequent reads.
type SettlementAck struct {
	BatchID          uuid.UUID        `json:"batch_id"`
	Status           SettlementStatus `json:"status"` // always PROCESSING
	EstimatedSeconds int              `json:"estimated_seconds"`
}
