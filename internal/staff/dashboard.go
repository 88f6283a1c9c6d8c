// Package staff implements the restaurant-side controllers: the live order
// dashboard, catalog administration, member administration and the kitchen
// TV board. Controllers validate and sequence; all state lives on the server.
package staff

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/notify"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
)

// Dashboard timing. The poll is a fallback for missed push notifications,
// so its cadence is slower than the customer status page.
const (
	DefaultRefreshInterval = 10 * time.Second
	DefaultAlertTTL        = 5 * time.Second
)

var (
	// ErrConfirmationRequired guards destructive actions behind an explicit
	// confirmation from the operator.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrNoForwardTransition means the order's status has no next step.
	ErrNoForwardTransition = errors.New("no forward transition from this status")
)

// OrdersAPI is the slice of the API client the dashboard drives.
type OrdersAPI interface {
	ActiveOrders(ctx context.Context) ([]api.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*api.Order, error)
}

// Runner is a background feed of push notifications, typically
// *notify.Listener.
type Runner interface {
	Run(ctx context.Context) error
}

// Dashboard is the live order board controller.
type Dashboard struct {
	orders   OrdersAPI
	interval time.Duration
	alertTTL time.Duration

	kick chan struct{}

	mu         sync.Mutex
	alert      string
	alertTimer *time.Timer
}

// NewDashboard builds a dashboard polling at interval
// (DefaultRefreshInterval when zero).
func NewDashboard(orders OrdersAPI, interval time.Duration) *Dashboard {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Dashboard{
		orders:   orders,
		interval: interval,
		alertTTL: DefaultAlertTTL,
		kick:     make(chan struct{}, 1),
	}
}

// Refresh fetches the active orders and sorts declared payments to the top.
// The sort is stable: within each group the server's ordering is preserved.
func (d *Dashboard) Refresh(ctx context.Context) ([]api.Order, error) {
	out, err := d.orders.ActiveOrders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch active orders")
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status == string(order.StatusPaymentDeclared) &&
			out[j].Status != string(order.StatusPaymentDeclared)
	})
	return out, nil
}

// Advance requests the forward transition for o.
func (d *Dashboard) Advance(ctx context.Context, o api.Order) (*api.Order, error) {
	next := order.Next(order.Status(o.Status))
	if next == "" {
		return nil, ErrNoForwardTransition
	}
	updated, err := d.orders.UpdateStatus(ctx, o.ID, string(next))
	if err != nil {
		return nil, errors.Wrap(err, "advance order")
	}
	return updated, nil
}

// Cancel cancels an order. The operator must confirm explicitly; without
// confirmation nothing is sent.
func (d *Dashboard) Cancel(ctx context.Context, orderID string, confirmed bool) (*api.Order, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	updated, err := d.orders.UpdateStatus(ctx, orderID, string(order.StatusCancelled))
	if err != nil {
		return nil, errors.Wrap(err, "cancel order")
	}
	return updated, nil
}

// Handler adapts push notifications into dashboard refreshes. A declared
// payment additionally raises the transient alert.
func (d *Dashboard) Handler() notify.Handler {
	return notify.HandlerFuncs{
		NewOrder: func(ctx context.Context, ref notify.OrderRef) {
			d.requestRefresh()
		},
		PaymentDeclared: func(ctx context.Context, ref notify.OrderRef) {
			d.raiseAlert(ref)
			d.requestRefresh()
		},
		StatusUpdated: func(ctx context.Context, ref notify.OrderRef) {
			d.requestRefresh()
		},
	}
}

// Alert returns the current transient alert, if one is showing.
func (d *Dashboard) Alert() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alert, d.alert != ""
}

func (d *Dashboard) raiseAlert(ref notify.OrderRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ref.TableNumber > 0 {
		d.alert = "Mesa " + strconv.Itoa(ref.TableNumber) + " declarou pagamento!"
	} else {
		d.alert = "Pagamento declarado!"
	}
	if d.alertTimer != nil {
		d.alertTimer.Stop()
	}
	d.alertTimer = time.AfterFunc(d.alertTTL, func() {
		d.mu.Lock()
		d.alert = ""
		d.mu.Unlock()
	})
}

func (d *Dashboard) requestRefresh() {
	select {
	case d.kick <- struct{}{}:
	default:
	}
}

// Watch runs the dashboard loop: an immediate refresh, then one per push
// notification or poll tick, whichever fires first. onOrders receives every
// successful refresh. listener may be nil to run poll-only. Watch returns
// the context error once ctx ends.
func (d *Dashboard) Watch(ctx context.Context, listener Runner, onOrders func([]api.Order)) error {
	g, ctx := errgroup.WithContext(ctx)

	if listener != nil {
		g.Go(func() error {
			return listener.Run(ctx)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			orders, err := d.Refresh(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				zctx.From(ctx).Warn("Dashboard refresh failed", zap.Error(err))
			} else {
				onOrders(orders)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-d.kick:
			case <-ticker.C:
			}
		}
	})

	return g.Wait()
}
