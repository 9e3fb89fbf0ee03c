/**
 * @description
 * This file defines the Transaction domain model and its status machine.
 * A transaction is the central ledger record for a payment captured by the
 * gateway; refunds are themselves transactions of type REFUND linked back to
 * the original via ParentTransactionID.
 *
 * @notes
 * - Amounts are stored as `int64` in the smallest currency unit (kobo).
 * - RefundedAmount is a running total on the original transaction and never
 *   exceeds Amount.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TxStatusInitiated         TransactionStatus = "INITIATED"
	TxStatusProcessing        TransactionStatus = "PROCESSING"
	TxStatusSuccess           TransactionStatus = "SUCCESS"
	TxStatusFailed            TransactionStatus = "FAILED"
	TxStatusCancelled         TransactionStatus = "CANCELLED"
	TxStatusPending           TransactionStatus = "PENDING"
	TxStatusRefunded          TransactionStatus = "REFUNDED"
	TxStatusPartiallyRefunded TransactionStatus = "PARTIALLY_REFUNDED"
	TxStatusExpired           TransactionStatus = "EXPIRED"
)

// TransactionType distinguishes forward payments from refunds.
type TransactionType string

const (
	TxTypePayment TransactionType = "PAYMENT"
	TxTypeRefund  TransactionType = "REFUND"
)

// PaymentMethod is the instrument used for a payment.
type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "UPI"
	MethodCard       PaymentMethod = "CARD"
	MethodNetBanking PaymentMethod = "NETBANKING"
	MethodWallet     PaymentMethod = "WALLET"
	MethodQR         PaymentMethod = "QR"
)

// Transaction represents a single payment or refund processed by the gateway.
type Transaction struct {
	ID                  uuid.UUID         `json:"id"`
	TransactionID       string            `json:"transaction_id"` // human-readable reference, e.g. TXN-...
	ClientID            uuid.UUID         `json:"client_id"`
	ClientName          string            `json:"client_name,omitempty"`
	Type                TransactionType   `json:"type"`
	Method              PaymentMethod     `json:"method"`
	Amount              int64             `json:"amount"` // in kobo
	Fee                 int64             `json:"fee"`    // in kobo
	Tax                 int64             `json:"tax"`    // in kobo
	NetAmount           int64             `json:"net_amount"` // in kobo
	Currency            string            `json:"currency"`
	Status              TransactionStatus `json:"status"`
	RefundedAmount      int64             `json:"refunded_amount"` // in kobo, running total
	ParentTransactionID *uuid.UUID        `json:"parent_transaction_id,omitempty"`
	RefundReason        *string           `json:"refund_reason,omitempty"`
	FailureReason       *string           `json:"failure_reason,omitempty"`
	IsSettled           bool              `json:"is_settled"`
	SettledAt           *time.Time        `json:"settled_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// RefundableAmount returns the balance still available for refund.
func (t *Transaction) RefundableAmount() int64 {
	return t.Amount - t.RefundedAmount
}

// IsRefundable reports whether a refund may be initiated against t.
func (t *Transaction) IsRefundable() bool {
	return t.Status == TxStatusSuccess || t.Status == TxStatusPartiallyRefunded
}

// IsTerminal reports whether t can no longer change status.
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case TxStatusFailed, TxStatusCancelled, TxStatusExpired, TxStatusRefunded:
		return true
	}
	return false
}

// txTransitions enumerates the legal status moves.
// INITIATED -> PROCESSING -> {SUCCESS, FAILED, CANCELLED, EXPIRED};
// SUCCESS -> PARTIALLY_REFUNDED -> REFUNDED (monotonic).
var txTransitions = map[TransactionStatus][]TransactionStatus{
	TxStatusInitiated:         {TxStatusProcessing, TxStatusExpired, TxStatusCancelled},
	TxStatusProcessing:        {TxStatusSuccess, TxStatusFailed, TxStatusCancelled, TxStatusExpired, TxStatusPending},
	TxStatusPending:           {TxStatusSuccess, TxStatusFailed, TxStatusExpired},
	TxStatusSuccess:           {TxStatusPartiallyRefunded, TxStatusRefunded},
	TxStatusPartiallyRefunded: {TxStatusPartiallyRefunded, TxStatusRefunded},
}

// CanTransition reports whether a transaction may move from one status to
// another. Terminal statuses have no outgoing edges.
func CanTransition(from, to TransactionStatus) bool {
	for _, next := range txTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
