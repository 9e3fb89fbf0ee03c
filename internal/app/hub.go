/**
 * @description
 * The notification hub simulates the gateway's live event feed for dashboard
 * widgets. Each subscription gets its own ticker goroutine that pushes a
 * randomly synthesized event every interval — fire-and-forget, at-most-once,
 * no replay. Unsubscribing releases exactly that subscription's ticker and
 * is idempotent.
 */

package app

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/console-engine/internal/domain"
)

// Hub is the periodic producer behind subscribeToUpdates.
type Hub struct {
	interval time.Duration
	logger   *slog.Logger
	clock    func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	subs   map[int64]chan struct{}
	nextID int64
	closed bool

	wg sync.WaitGroup
}

// NewHub creates a hub pushing one event per interval to each subscriber.
// rng may be nil, in which case a time-seeded source is used.
func NewHub(interval time.Duration, logger *slog.Logger, rng *rand.Rand) *Hub {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Hub{
		interval: interval,
		logger:   logger,
		clock:    time.Now,
		rng:      rng,
		subs:     make(map[int64]chan struct{}),
	}
}

// Subscribe registers cb for periodic events and returns its unsubscribe
// function. Concurrent subscriptions are independent; each unsubscribe stops
// only its own ticker. Unsubscribe is idempotent and does not cancel a
// callback already in flight.
func (h *Hub) Subscribe(cb func(domain.NotificationEvent)) func() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return func() {}
	}
	id := h.nextID
	h.nextID++
	stop := make(chan struct{})
	h.subs[id] = stop
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				cb(h.randomEvent())
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(stop)
			}
			h.mu.Unlock()
		})
	}
}

// Close stops every subscription and waits for the ticker goroutines to
// exit. Subscribing after Close is a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		for id, stop := range h.subs {
			delete(h.subs, id)
			close(stop)
		}
	}
	h.mu.Unlock()
	h.wg.Wait()
}

// randomEvent synthesizes one feed event with a random type and payload.
func (h *Hub) randomEvent() domain.NotificationEvent {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()

	now := h.clock()
	switch h.rng.Intn(3) {
	case 0:
		id := uuid.New()
		return domain.NotificationEvent{
			Type: domain.EventTypeTransaction,
			Data: domain.EventPayload{
				ID:        domain.TransactionRef(id),
				Message:   fmt.Sprintf("New transaction of ₦%d.00 received", (h.rng.Int63n(9901)+100)*5),
				Timestamp: now,
			},
		}
	case 1:
		id := uuid.New()
		return domain.NotificationEvent{
			Type: domain.EventTypeSettlement,
			Data: domain.EventPayload{
				ID:        domain.BatchRef(id),
				Message:   "Settlement batch moved to processing",
				Timestamp: now,
			},
		}
	default:
		return domain.NotificationEvent{
			Type: domain.EventTypeAlert,
			Data: domain.EventPayload{
				ID:        uuid.NewString(),
				Message:   alertMessages[h.rng.Intn(len(alertMessages))],
				Timestamp: now,
			},
		}
	}
}

var alertMessages = []string{
	"Success rate dipped below threshold",
	"Unusual refund volume detected",
	"KYC document pending review",
	"Gateway latency above p95 target",
}
