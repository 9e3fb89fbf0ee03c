package app

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
	"github.com/transfa/console-engine/internal/store"
)

// fixedSeeder lets app tests pin the exact dataset behind the stores.
type fixedSeeder struct {
	clients      []domain.Client
	transactions []domain.Transaction
	settlements  []domain.SettlementBatch
}

func (f *fixedSeeder) Clients(int) []domain.Client { return append([]domain.Client(nil), f.clients...) }

func (f *fixedSeeder) Transactions(int, []domain.Client) []domain.Transaction {
	return append([]domain.Transaction(nil), f.transactions...)
}

func (f *fixedSeeder) Settlements([]domain.Transaction) []domain.SettlementBatch {
	return append([]domain.SettlementBatch(nil), f.settlements...)
}

func newFixedService(t *testing.T, seeder *fixedSeeder) *Service {
	t.Helper()
	repo := store.NewMemoryRepository(seeder, store.MemoryConfig{
		SeedClients:      1,
		SeedTransactions: 1,
		Clock:            testClock,
	})
	svc := NewService(repo, testLogger(), Options{Clock: testClock})
	t.Cleanup(svc.Close)
	return svc
}

func payment(client *domain.Client, status domain.TransactionStatus, amount int64, method domain.PaymentMethod, at time.Time) domain.Transaction {
	id := uuid.New()
	return domain.Transaction{
		ID:            id,
		TransactionID: domain.TransactionRef(id),
		ClientID:      client.ID,
		ClientName:    client.ClientName,
		Type:          domain.TxTypePayment,
		Method:        method,
		Amount:        amount,
		Currency:      "NGN",
		Status:        status,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGetDashboardMetrics(t *testing.T) {
	clientA := fixtureMetricsClient("Alpha Retail", domain.ClientStatusActive)
	clientB := fixtureMetricsClient("Beta Foods", domain.ClientStatusPending)

	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	refundID := uuid.New()
	refund := domain.Transaction{
		ID:            refundID,
		TransactionID: domain.TransactionRef(refundID),
		ClientID:      clientA.ID,
		ClientName:    clientA.ClientName,
		Type:          domain.TxTypeRefund,
		Method:        domain.MethodUPI,
		Amount:        100,
		Status:        domain.TxStatusProcessing,
		CreatedAt:     today.Add(8 * time.Hour),
		UpdatedAt:     today.Add(8 * time.Hour),
	}

	svc := newFixedService(t, &fixedSeeder{
		clients: []domain.Client{clientA, clientB},
		transactions: []domain.Transaction{
			payment(&clientA, domain.TxStatusSuccess, 1000, domain.MethodUPI, today.Add(9*time.Hour+30*time.Minute)),
			payment(&clientA, domain.TxStatusFailed, 500, domain.MethodCard, today.Add(10*time.Hour+15*time.Minute)),
			payment(&clientB, domain.TxStatusSuccess, 2000, domain.MethodUPI, yesterday.Add(11*time.Hour)),
			payment(&clientB, domain.TxStatusPending, 700, domain.MethodWallet, today.AddDate(0, 0, -5)),
			refund,
		},
	})

	m, err := svc.GetDashboardMetrics(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardMetrics returned error: %v", err)
	}

	if m.Overview.TodayTransactions != 2 {
		t.Fatalf("todayTransactions = %d, want 2", m.Overview.TodayTransactions)
	}
	if m.Overview.TodayVolume != 1500 {
		t.Fatalf("todayVolume = %d, want 1500", m.Overview.TodayVolume)
	}
	// Two successes out of three finished payments; the PENDING one and the
	// refund record stay out of the rate.
	if !approxEqual(m.Overview.SuccessRate, 200.0/3.0) {
		t.Fatalf("successRate = %f, want %f", m.Overview.SuccessRate, 200.0/3.0)
	}
	if m.Overview.ActiveClients != 1 {
		t.Fatalf("activeClients = %d, want 1", m.Overview.ActiveClients)
	}

	if !approxEqual(m.Trends.TransactionGrowth, 100) {
		t.Fatalf("transactionGrowth = %f, want 100", m.Trends.TransactionGrowth)
	}
	if !approxEqual(m.Trends.VolumeGrowth, -25) {
		t.Fatalf("volumeGrowth = %f, want -25", m.Trends.VolumeGrowth)
	}

	if len(m.HourlyVolume) != 24 {
		t.Fatalf("expected 24 hourly buckets, got %d", len(m.HourlyVolume))
	}
	for h, bucket := range m.HourlyVolume {
		if bucket.Hour != h {
			t.Fatalf("bucket %d labeled hour %d", h, bucket.Hour)
		}
		switch h {
		case 9:
			if bucket.Count != 1 || bucket.Volume != 1000 {
				t.Fatalf("hour 9: count=%d volume=%d", bucket.Count, bucket.Volume)
			}
		case 10:
			if bucket.Count != 1 || bucket.Volume != 500 {
				t.Fatalf("hour 10: count=%d volume=%d", bucket.Count, bucket.Volume)
			}
		default:
			if bucket.Count != 0 || bucket.Volume != 0 {
				t.Fatalf("hour %d unexpectedly populated", h)
			}
		}
	}

	// Method distribution covers all payments regardless of status or day,
	// sorted by count descending.
	if len(m.MethodDistribution) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(m.MethodDistribution))
	}
	top := m.MethodDistribution[0]
	if top.Method != domain.MethodUPI || top.Count != 2 || top.Volume != 3000 {
		t.Fatalf("top method = %+v, want UPI count=2 volume=3000", top)
	}
	if !approxEqual(top.Percent, 50) {
		t.Fatalf("UPI share = %f, want 50", top.Percent)
	}

	// Top clients rank by successful volume, so Beta leads despite the tie in
	// transaction count.
	if len(m.TopClients) != 2 {
		t.Fatalf("expected 2 ranked clients, got %d", len(m.TopClients))
	}
	if m.TopClients[0].ClientID != clientB.ID || m.TopClients[0].Volume != 2000 {
		t.Fatalf("top client = %+v, want Beta volume=2000", m.TopClients[0])
	}
	if m.TopClients[1].Volume != 1000 || m.TopClients[1].Transactions != 2 {
		t.Fatalf("second client = %+v, want volume=1000 transactions=2", m.TopClients[1])
	}
}

func TestGetDashboardMetricsEmptyStores(t *testing.T) {
	svc := newFixedService(t, &fixedSeeder{})

	m, err := svc.GetDashboardMetrics(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardMetrics returned error: %v", err)
	}
	if m.Overview.SuccessRate != 0 {
		t.Fatalf("successRate on empty store = %f, want 0", m.Overview.SuccessRate)
	}
	if m.Trends.TransactionGrowth != 0 || m.Trends.VolumeGrowth != 0 {
		t.Fatalf("expected flat trends, got %+v", m.Trends)
	}
	if len(m.HourlyVolume) != 24 {
		t.Fatalf("expected 24 hourly buckets, got %d", len(m.HourlyVolume))
	}
}

func TestGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{name: "both zero", current: 0, previous: 0, want: 0},
		{name: "from zero", current: 5, previous: 0, want: 100},
		{name: "doubled", current: 20, previous: 10, want: 100},
		{name: "halved", current: 5, previous: 10, want: -50},
		{name: "flat", current: 10, previous: 10, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := growth(tt.current, tt.previous); !approxEqual(got, tt.want) {
				t.Fatalf("growth(%d, %d) = %f, want %f", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func fixtureMetricsClient(name string, status domain.ClientStatus) domain.Client {
	id := uuid.New()
	createdAt := appTestNow.Add(-30 * 24 * time.Hour)
	return domain.Client{
		ID:         id,
		ClientCode: domain.ClientCode(id),
		ClientName: name,
		Email:      "ops@example.com",
		Status:     status,
		KYCStatus:  domain.KYCStatusVerified,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}
