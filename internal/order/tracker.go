package order

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
)

// DefaultPollInterval is the customer status page cadence.
const DefaultPollInterval = 5 * time.Second

// Getter is the slice of the API client used to poll an order.
type Getter interface {
	GetOrder(ctx context.Context, orderID string) (*api.Order, error)
}

// Reconciler applies order snapshots idempotently, regardless of whether a
// poll tick or a push notification produced them. A snapshot is dropped
// unless it is newer (by the server's updated_at) than the last applied one
// for the same order: last-write-wins by timestamp.
type Reconciler struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewReconciler returns an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{seen: make(map[string]time.Time)}
}

// Apply reports whether the snapshot is new enough to act on. Equal
// timestamps are dropped too: the first snapshot to arrive wins the race.
func (r *Reconciler) Apply(o *api.Order) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if last, ok := r.seen[o.ID]; ok && !o.UpdatedAt.After(last) {
		return false
	}
	r.seen[o.ID] = o.UpdatedAt
	return true
}

// Forget drops the recorded timestamp for an order, letting the next
// snapshot apply unconditionally.
func (r *Reconciler) Forget(orderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seen, orderID)
}

// Tracker polls one order and feeds fresh snapshots to a callback until the
// order reaches a terminal state or the context ends.
type Tracker struct {
	orders   Getter
	rec      *Reconciler
	interval time.Duration
}

// NewTracker builds a tracker polling at interval (DefaultPollInterval when
// zero).
func NewTracker(orders Getter, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{
		orders:   orders,
		rec:      NewReconciler(),
		interval: interval,
	}
}

// Watch fetches the order immediately and then on every tick, invoking
// onUpdate for each snapshot the reconciler accepts. It returns nil once the
// order goes terminal, or the context error on cancellation. Fetch failures
// are logged and retried on the next tick; the poll loop itself never dies
// from a transient error.
func (t *Tracker) Watch(ctx context.Context, orderID string, onUpdate func(*api.Order)) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		o, err := t.orders.GetOrder(ctx, orderID)
		switch {
		case err == nil:
			if t.rec.Apply(o) {
				onUpdate(o)
			}
			if Terminal(Status(o.Status)) {
				return nil
			}
		case ctx.Err() != nil:
			// Only the watch context ends the loop. Per-request timeouts
			// also look like context.DeadlineExceeded and must retry.
			return ctx.Err()
		default:
			zctx.From(ctx).Warn("Order poll failed",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
