/**
 * @description
 * Deterministic synthetic data generators for the console-engine. The stores
 * call these on first access to stand in for a real gateway's history. The
 * generator is seeded, so a fixed seed reproduces the exact dataset; tests
 * lean on that instead of golden fixtures.
 *
 * @notes
 * - Entity UUIDs come from the generator's own rand source via
 *   uuid.NewRandomFromReader, so identifiers are reproducible too.
 * - Amounts are int64 kobo. Timestamps spread over the trailing 30 days,
 *   newest first, matching the stores' insertion order.
 */

package seed

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
)

const seedWindow = 30 * 24 * time.Hour

var businessNames = []string{
	"Apex Retail", "BlueWave Commerce", "Cedar Foods", "DeltaPay Stores",
	"Everest Logistics", "Falcon Travels", "GreenLeaf Pharmacy", "Horizon Media",
	"Ivory Fashion", "Juniper Electronics", "Kite Education", "Lotus Wellness",
	"Meridian Hotels", "Northstar Gaming", "Oakline Furniture", "Pinnacle Motors",
	"Quartz Jewellers", "Riverstone Books", "Summit Fitness", "Tidal Seafoods",
}

var businessTypes = []string{"RETAIL", "ECOMMERCE", "SERVICES", "HOSPITALITY", "EDUCATION"}

var settlementCycles = []string{"T+1", "T+2", "T+3"}

var paymentMethods = []domain.PaymentMethod{
	domain.MethodUPI, domain.MethodCard, domain.MethodNetBanking,
	domain.MethodWallet, domain.MethodQR,
}

// weighted pairs a candidate value with its relative draw weight.
type weighted[T any] struct {
	value  T
	weight int
}

// Weighted so the dashboard shows a realistic mix: most payments succeed,
// the rest spread over the remaining lifecycle states.
var transactionStatuses = []weighted[domain.TransactionStatus]{
	{domain.TxStatusSuccess, 62},
	{domain.TxStatusFailed, 12},
	{domain.TxStatusProcessing, 8},
	{domain.TxStatusPending, 7},
	{domain.TxStatusInitiated, 5},
	{domain.TxStatusCancelled, 4},
	{domain.TxStatusExpired, 2},
}

var clientStatuses = []weighted[domain.ClientStatus]{
	{domain.ClientStatusActive, 70},
	{domain.ClientStatusPending, 12},
	{domain.ClientStatusInactive, 10},
	{domain.ClientStatusSuspended, 5},
	{domain.ClientStatusBlocked, 3},
}

// Generator produces the synthetic dataset. It implements store.Seeder.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator whose output is fully determined by seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock overrides the reference time used for generated timestamps.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Clients generates n synthetic clients, newest first.
func (g *Generator) Clients(n int) []domain.Client {
	now := g.now()
	clients := make([]domain.Client, 0, n)
	for i := 0; i < n; i++ {
		id := g.newUUID()
		createdAt := now.Add(-time.Duration(g.rng.Int63n(int64(seedWindow))))
		name := fmt.Sprintf("%s %03d", businessNames[g.rng.Intn(len(businessNames))], i+1)
		status := pickWeighted(g.rng, clientStatuses)

		kyc := domain.KYCStatusVerified
		if status == domain.ClientStatusPending {
			kyc = domain.KYCStatusPending
		} else if status == domain.ClientStatusBlocked {
			kyc = domain.KYCStatusRejected
		}

		clients = append(clients, domain.Client{
			ID:              id,
			ClientCode:      domain.ClientCode(id),
			ClientName:      name,
			Email:           fmt.Sprintf("ops%03d@%s", i+1, emailDomain(name)),
			Phone:           fmt.Sprintf("+23480%08d", g.rng.Intn(100000000)),
			BusinessType:    businessTypes[g.rng.Intn(len(businessTypes))],
			Website:         fmt.Sprintf("https://%s", emailDomain(name)),
			Status:          status,
			KYCStatus:       kyc,
			SettlementCycle: settlementCycles[g.rng.Intn(len(settlementCycles))],
			CreatedAt:       createdAt,
			UpdatedAt:       createdAt,
		})
	}
	sortNewestFirst(clients, func(c *domain.Client) time.Time { return c.CreatedAt })
	return clients
}

// Transactions generates n synthetic payments attributed to the given
// clients and rolls the per-client aggregates up onto the client records.
func (g *Generator) Transactions(n int, clients []domain.Client) []domain.Transaction {
	now := g.now()
	transactions := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		id := g.newUUID()
		createdAt := now.Add(-time.Duration(g.rng.Int63n(int64(seedWindow))))
		status := pickWeighted(g.rng, transactionStatuses)

		// 500 naira to ~50,000 naira, in kobo.
		amount := (g.rng.Int63n(9901) + 100) * 500
		fee := amount * 2 / 100
		tax := fee * 18 / 100

		tx := domain.Transaction{
			ID:            id,
			TransactionID: domain.TransactionRef(id),
			Type:          domain.TxTypePayment,
			Method:        paymentMethods[g.rng.Intn(len(paymentMethods))],
			Amount:        amount,
			Fee:           fee,
			Tax:           tax,
			NetAmount:     amount - fee - tax,
			Currency:      "NGN",
			Status:        status,
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}
		if len(clients) > 0 {
			c := &clients[g.rng.Intn(len(clients))]
			tx.ClientID = c.ID
			tx.ClientName = c.ClientName
		}
		if status == domain.TxStatusFailed {
			reason := failureReasons[g.rng.Intn(len(failureReasons))]
			tx.FailureReason = &reason
		}
		transactions = append(transactions, tx)
	}
	sortNewestFirst(transactions, func(t *domain.Transaction) time.Time { return t.CreatedAt })

	rollUpClientAggregates(clients, transactions)
	return transactions
}

// Settlements groups settled-eligible transactions per client into batches.
// Older batches come out COMPLETED with their transactions marked settled,
// recent ones stay PENDING so there is always work for ProcessSettlement.
func (g *Generator) Settlements(transactions []domain.Transaction) []domain.SettlementBatch {
	now := g.now()
	byClient := make(map[uuid.UUID][]*domain.Transaction)
	order := make([]uuid.UUID, 0)
	for i := range transactions {
		t := &transactions[i]
		if t.Status != domain.TxStatusSuccess || t.Type != domain.TxTypePayment {
			continue
		}
		if _, seen := byClient[t.ClientID]; !seen {
			order = append(order, t.ClientID)
		}
		byClient[t.ClientID] = append(byClient[t.ClientID], t)
	}

	batches := make([]domain.SettlementBatch, 0, len(order))
	for _, clientID := range order {
		group := byClient[clientID]
		// Split each client's successes into batches of up to 25.
		for start := 0; start < len(group); start += 25 {
			end := start + 25
			if end > len(group) {
				end = len(group)
			}
			chunk := group[start:end]

			id := g.newUUID()
			batch := domain.SettlementBatch{
				ID:                id,
				BatchID:           domain.BatchRef(id),
				ClientID:          clientID,
				ClientName:        chunk[0].ClientName,
				Status:            domain.SettlementStatusPending,
				TotalTransactions: len(chunk),
				CreatedAt:         now.Add(-time.Duration(g.rng.Int63n(int64(seedWindow / 2)))),
			}
			batch.UpdatedAt = batch.CreatedAt
			for _, t := range chunk {
				batch.TransactionIDs = append(batch.TransactionIDs, t.ID)
				batch.TotalAmount += t.Amount
				batch.TotalFee += t.Fee
			}

			// Roughly two thirds of seeded batches are already paid out.
			if g.rng.Intn(3) != 0 {
				processedAt := batch.CreatedAt.Add(time.Duration(g.rng.Intn(120)+30) * time.Minute)
				utr := fmt.Sprintf("UTR%012d", g.rng.Int63n(1_000_000_000_000))
				batch.Status = domain.SettlementStatusCompleted
				batch.ProcessedAt = &processedAt
				batch.UpdatedAt = processedAt
				batch.UTR = &utr
				for _, t := range chunk {
					t.IsSettled = true
					settledAt := processedAt
					t.SettledAt = &settledAt
				}
			}
			batches = append(batches, batch)
		}
	}
	sortNewestFirst(batches, func(b *domain.SettlementBatch) time.Time { return b.CreatedAt })
	return batches
}

var failureReasons = []string{
	"insufficient funds",
	"issuer declined",
	"customer dropped",
	"bank timeout",
	"risk check failed",
}

func (g *Generator) newUUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand never fails as a reader.
		panic(err)
	}
	return id
}

func pickWeighted[T any](rng *rand.Rand, choices []weighted[T]) T {
	total := 0
	for _, c := range choices {
		total += c.weight
	}
	n := rng.Intn(total)
	for _, c := range choices {
		n -= c.weight
		if n < 0 {
			return c.value
		}
	}
	return choices[len(choices)-1].value
}

func sortNewestFirst[T any](items []T, at func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(&items[i]).After(at(&items[j]))
	})
}

func rollUpClientAggregates(clients []domain.Client, transactions []domain.Transaction) {
	counts := make(map[uuid.UUID]int64)
	volumes := make(map[uuid.UUID]int64)
	for i := range transactions {
		t := &transactions[i]
		counts[t.ClientID]++
		if t.Status == domain.TxStatusSuccess {
			volumes[t.ClientID] += t.Amount
		}
	}
	for i := range clients {
		clients[i].TotalTransactions = counts[clients[i].ID]
		clients[i].TotalVolume = volumes[clients[i].ID]
	}
}

func emailDomain(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	return string(out) + ".example.com"
}
