/**
 * @description
 * Dashboard metrics aggregation. GetDashboardMetrics is a pure function of a
 * read-only snapshot of the stores taken at call time: no memoization, so
 * repeated calls only differ when the underlying stores changed.
 */

package app

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
)

const topClientsLimit = 5

// GetDashboardMetrics computes the composite dashboard view: today's
// overview, trend deltas versus yesterday, hourly buckets, payment-method
// distribution and a top-clients ranking.
func (s *Service) GetDashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	transactions, err := s.repo.SnapshotTransactions(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.repo.SnapshotClients(ctx)
	if err != nil {
		return nil, err
	}

	now := s.opts.Clock()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	metrics := &domain.DashboardMetrics{
		HourlyVolume: make([]domain.HourlyBucket, 24),
	}
	for h := range metrics.HourlyVolume {
		metrics.HourlyVolume[h].Hour = h
	}

	var (
		todayCount, todayVolume     int64
		yesterdayCount              int64
		yesterdayVolume             int64
		successCount, finishedCount int64
		methodCounts                = make(map[domain.PaymentMethod]*domain.MethodShare)
		perClient                   = make(map[uuid.UUID]*domain.ClientVolume)
	)

	for i := range transactions {
		t := &transactions[i]
		if t.Type != domain.TxTypePayment {
			continue
		}

		switch t.Status {
		case domain.TxStatusSuccess, domain.TxStatusRefunded, domain.TxStatusPartiallyRefunded:
			successCount++
			finishedCount++
		case domain.TxStatusFailed, domain.TxStatusCancelled, domain.TxStatusExpired:
			finishedCount++
		}

		if !t.CreatedAt.Before(todayStart) {
			todayCount++
			todayVolume += t.Amount
			h := t.CreatedAt.Hour()
			metrics.HourlyVolume[h].Count++
			metrics.HourlyVolume[h].Volume += t.Amount
		} else if !t.CreatedAt.Before(yesterdayStart) {
			yesterdayCount++
			yesterdayVolume += t.Amount
		}

		share := methodCounts[t.Method]
		if share == nil {
			share = &domain.MethodShare{Method: t.Method}
			methodCounts[t.Method] = share
		}
		share.Count++
		share.Volume += t.Amount

		cv := perClient[t.ClientID]
		if cv == nil {
			cv = &domain.ClientVolume{ClientID: t.ClientID, ClientName: t.ClientName}
			perClient[t.ClientID] = cv
		}
		cv.Transactions++
		if t.Status == domain.TxStatusSuccess || t.Status == domain.TxStatusRefunded || t.Status == domain.TxStatusPartiallyRefunded {
			cv.Volume += t.Amount
		}
	}

	var activeClients int64
	for i := range clients {
		if clients[i].Status == domain.ClientStatusActive {
			activeClients++
		}
	}

	metrics.Overview = domain.Overview{
		TodayTransactions: todayCount,
		TodayVolume:       todayVolume,
		SuccessRate:       percentage(successCount, finishedCount),
		ActiveClients:     activeClients,
	}
	metrics.Trends = domain.Trends{
		TransactionGrowth: growth(todayCount, yesterdayCount),
		VolumeGrowth:      growth(todayVolume, yesterdayVolume),
	}

	total := int64(0)
	for _, share := range methodCounts {
		total += share.Count
	}
	for _, share := range methodCounts {
		share.Percent = percentage(share.Count, total)
		metrics.MethodDistribution = append(metrics.MethodDistribution, *share)
	}
	sort.Slice(metrics.MethodDistribution, func(i, j int) bool {
		return metrics.MethodDistribution[i].Count > metrics.MethodDistribution[j].Count
	})

	for _, cv := range perClient {
		metrics.TopClients = append(metrics.TopClients, *cv)
	}
	sort.Slice(metrics.TopClients, func(i, j int) bool {
		return metrics.TopClients[i].Volume > metrics.TopClients[j].Volume
	})
	if len(metrics.TopClients) > topClientsLimit {
		metrics.TopClients = metrics.TopClients[:topClientsLimit]
	}

	return metrics, nil
}

func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// growth returns the percentage change of current versus previous. A zero
// previous period reports 100% growth when anything happened at all.
func growth(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}
