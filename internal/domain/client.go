/**
 * @description
 * This file defines the Client domain model for the console-engine: the
 * onboarded merchant entity the back office manages. Aggregate metrics
 * (TotalTransactions, TotalVolume) are denormalized onto the record the way
 * the dashboard consumes them.
 *
 * @notes
 * - Monetary amounts are stored as `int64` in the smallest currency unit
 *   (kobo), which avoids floating-point inaccuracies with financial data.
 */

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientStatus is the onboarding lifecycle state of a client.
type ClientStatus string

const (
	ClientStatusPending   ClientStatus = "PENDING"
	ClientStatusActive    ClientStatus = "ACTIVE"
	ClientStatusInactive  ClientStatus = "INACTIVE"
	ClientStatusSuspended ClientStatus = "SUSPENDED"
	ClientStatusBlocked   ClientStatus = "BLOCKED"
)

// KYCStatus is the verification state of a client's KYC submission.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "PENDING"
	KYCStatusVerified KYCStatus = "VERIFIED"
	KYCStatusRejected KYCStatus = "REJECTED"
)

// Client represents an onboarded merchant in the back office.
type Client struct {
	ID                uuid.UUID    `json:"id"`
	ClientCode        string       `json:"client_code"`
	ClientName        string       `json:"client_name"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"`
	BusinessType      string       `json:"business_type,omitempty"`
	Website           string       `json:"website,omitempty"`
	Status            ClientStatus `json:"status"`
	KYCStatus         KYCStatus    `json:"kyc_status"`
	SettlementCycle   string       `json:"settlement_cycle,omitempty"` // e.g. 'T+1', 'T+2'
	TotalTransactions int64        `json:"total_transactions"`
	TotalVolume       int64        `json:"total_volume"` // in kobo
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// CreateClientParams is the input for onboarding a new client.
type CreateClientParams struct {
	ClientName   string `json:"client_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Website      string `json:"website,omitempty"`
}

// Validate checks the required onboarding fields.
func (p CreateClientParams) Validate() error {
	if strings.TrimSpace(p.ClientName) == "" {
		return wrapInvalidArgument("client_name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return wrapInvalidArgument("email is required")
	}
	return nil
}

// UpdateClientParams carries a partial update; nil fields are left untouched.
type UpdateClientParams struct {
	ClientName      *string       `json:"client_name,omitempty"`
	Email           *string       `json:"email,omitempty"`
	Phone           *string       `json:"phone,omitempty"`
	BusinessType    *string       `json:"business_type,omitempty"`
	Website         *string       `json:"website,omitempty"`
	Status          *ClientStatus `json:"status,omitempty"`
	KYCStatus       *KYCStatus    `json:"kyc_status,omitempty"`
	SettlementCycle *string       `json:"settlement_cycle,omitempty"`
}
