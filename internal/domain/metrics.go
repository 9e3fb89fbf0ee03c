/**
 * @description
 * Dashboard metrics shapes computed by the aggregator from a read-only
 * snapshot of the stores.
 */

package domain

import "github.com/google/uuid"

// Overview carries the headline numbers for the current day.
type Overview struct {
	TodayTransactions int64   `json:"today_transactions"`
	TodayVolume       int64   `json:"today_volume"` // in kobo
	SuccessRate       float64 `json:"success_rate"` // 0..100
	ActiveClients     int64   `json:"active_clients"`
}

// Trends carries percentage deltas versus the prior comparable period.
type Trends struct {
	TransactionGrowth float64 `json:"transaction_growth"` // percent
	VolumeGrowth      float64 `json:"volume_growth"`      // percent
}

// HourlyBucket is one of 24 per-hour aggregates for the current day.
type HourlyBucket struct {
	Hour   int   `json:"hour"` // 0..23
	Count  int64 `json:"count"`
	Volume int64 `json:"volume"` // in kobo
}

// MethodShare is the share of one payment method in the distribution.
type MethodShare struct {
	Method  PaymentMethod `json:"method"`
	Count   int64         `json:"count"`
	Volume  int64         `json:"volume"`  // in kobo
	Percent float64       `json:"percent"` // share of count, 0..100
}

// ClientVolume ranks one client by processed volume.
type ClientVolume struct {
	ClientID     uuid.UUID `json:"client_id"`
	ClientName   string    `json:"client_name"`
	Transactions int64     `json:"transactions"`
	Volume       int64     `json:"volume"` // in kobo
}

// DashboardMetrics is the composite snapshot returned by GetDashboardMetrics.
type DashboardMetrics struct {
	Overview           Overview       `json:"overview"`
	Trends             Trends         `json:"trends"`
	HourlyVolume       []HourlyBucket `json:"hourly_volume"` // always 24 buckets
	MethodDistribution []MethodShare  `json:"method_distribution"`
	TopClients         []ClientVolume `json:"top_clients"`
}
