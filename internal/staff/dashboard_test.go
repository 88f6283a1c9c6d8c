package staff

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/notify"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
)

type fakeOrdersAPI struct {
	mu      sync.Mutex
	active  []api.Order
	updates []string // "id:status" pairs, in call order
	fetches int
}

func (f *fakeOrdersAPI) ActiveOrders(context.Context) ([]api.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	out := make([]api.Order, len(f.active))
	copy(out, f.active)
	return out, nil
}

func (f *fakeOrdersAPI) UpdateStatus(_ context.Context, orderID, status string) (*api.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, orderID+":"+status)
	return &api.Order{ID: orderID, Status: status}, nil
}

func TestRefresh_DeclaredPaymentsSortFirst(t *testing.T) {
	fake := &fakeOrdersAPI{active: []api.Order{
		{ID: "a", Status: string(order.StatusPreparing)},
		{ID: "b", Status: string(order.StatusPaymentDeclared)},
		{ID: "c", Status: string(order.StatusReady)},
		{ID: "d", Status: string(order.StatusPaymentDeclared)},
	}}

	got, err := NewDashboard(fake, time.Minute).Refresh(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, o := range got {
		ids[i] = o.ID
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids,
		"declared payments first, server order preserved within each group")
}

func TestAdvance(t *testing.T) {
	fake := &fakeOrdersAPI{}
	d := NewDashboard(fake, time.Minute)
	ctx := context.Background()

	updated, err := d.Advance(ctx, api.Order{ID: "o1", Status: string(order.StatusPaymentDeclared)})
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusPreparing), updated.Status)

	_, err = d.Advance(ctx, api.Order{ID: "o1", Status: string(order.StatusTab)})
	require.NoError(t, err)

	_, err = d.Advance(ctx, api.Order{ID: "o2", Status: string(order.StatusDelivered)})
	assert.ErrorIs(t, err, ErrNoForwardTransition)

	_, err = d.Advance(ctx, api.Order{ID: "o3", Status: "status_estranho"})
	assert.ErrorIs(t, err, ErrNoForwardTransition)

	assert.Equal(t, []string{"o1:em_preparacao", "o1:em_preparacao"}, fake.updates)
}

func TestCancel_RequiresConfirmation(t *testing.T) {
	fake := &fakeOrdersAPI{}
	d := NewDashboard(fake, time.Minute)
	ctx := context.Background()

	_, err := d.Cancel(ctx, "o1", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, fake.updates, "nothing sent without confirmation")

	updated, err := d.Cancel(ctx, "o1", true)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCancelled), updated.Status)
}

func TestHandler_PaymentDeclaredRaisesTransientAlert(t *testing.T) {
	d := NewDashboard(&fakeOrdersAPI{}, time.Minute)
	d.alertTTL = 20 * time.Millisecond

	_, showing := d.Alert()
	assert.False(t, showing)

	d.Handler().OnPaymentDeclared(context.Background(), notify.OrderRef{OrderID: "o1", TableNumber: 7})

	msg, showing := d.Alert()
	require.True(t, showing)
	assert.Equal(t, "Mesa 7 declarou pagamento!", msg)

	assert.Eventually(t, func() bool {
		_, showing := d.Alert()
		return !showing
	}, time.Second, 5*time.Millisecond, "alert clears on its own")
}

func TestWatch_PushNotificationTriggersRefresh(t *testing.T) {
	fake := &fakeOrdersAPI{active: []api.Order{{ID: "o1", Status: string(order.StatusPreparing)}}}
	d := NewDashboard(fake, time.Hour) // poll effectively disabled

	refreshes := make(chan int, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- d.Watch(ctx, nil, func(orders []api.Order) {
			refreshes <- len(orders)
		})
	}()

	// Initial refresh fires before any notification.
	select {
	case n := <-refreshes:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("initial refresh never happened")
	}

	d.Handler().OnNewOrder(ctx, notify.OrderRef{OrderID: "o2"})

	select {
	case <-refreshes:
	case <-time.After(time.Second):
		t.Fatal("push notification did not trigger a refresh")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop after cancellation")
	}
}

func TestWatch_PollTickTriggersRefresh(t *testing.T) {
	fake := &fakeOrdersAPI{}
	d := NewDashboard(fake, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = d.Watch(ctx, nil, func([]api.Order) {})
	}()

	assert.Eventually(t, func() bool {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		return fake.fetches >= 3
	}, time.Second, 5*time.Millisecond, "poll keeps refreshing without notifications")
}
