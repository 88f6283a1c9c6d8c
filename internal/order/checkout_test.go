package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/identity"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

type fakeCreator struct {
	got  api.CreateOrderRequest
	resp *api.Order
	err  error
}

func (f *fakeCreator) CreateOrder(_ context.Context, req api.CreateOrderRequest) (*api.Order, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newCartWith(t *testing.T, store state.Store) *cart.Cart {
	t.Helper()
	c := cart.Load(store)
	require.NoError(t, c.AddItem("p1", "Caldo", decimal.RequireFromString("14.9"), ""))
	require.NoError(t, c.AddItem("p1", "Caldo", decimal.RequireFromString("14.9"), ""))
	require.NoError(t, c.AddItem("p2", "Torta", decimal.RequireFromString("8.5"), ""))
	return c
}

func TestPlace_Success(t *testing.T) {
	store := state.NewMemStore()
	crt := newCartWith(t, store)
	creator := &fakeCreator{resp: &api.Order{ID: "o1", Status: string(StatusAwaitingPayment)}}

	placed, err := NewCheckout(creator, store).Place(context.Background(), crt, PlaceRequest{
		Identity:     identity.Identity{SessionID: "s1", TableNumber: 7},
		CustomerName: "João",
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", placed.ID)

	assert.Equal(t, "s1", creator.got.SessionID)
	assert.Equal(t, 7, creator.got.TableNumber)
	assert.Equal(t, api.PaymentPix, creator.got.PaymentMethod)
	require.Len(t, creator.got.Items, 2)
	assert.Equal(t, api.OrderItemRequest{ItemID: "p1", Quantity: 2}, creator.got.Items[0])

	id, ok := Active(store)
	require.True(t, ok)
	assert.Equal(t, "o1", id)
	assert.Zero(t, crt.TotalItems(), "cart is cleared after placing")
}

func TestPlace_ValidatesBeforeCalling(t *testing.T) {
	store := state.NewMemStore()
	creator := &fakeCreator{resp: &api.Order{ID: "o1"}}
	co := NewCheckout(creator, store)
	ctx := context.Background()

	_, err := co.Place(ctx, cart.Load(store), PlaceRequest{CustomerName: "João"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	crt := newCartWith(t, store)
	_, err = co.Place(ctx, crt, PlaceRequest{})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = co.Place(ctx, crt, PlaceRequest{CustomerName: "João", BillToTab: true})
	assert.ErrorIs(t, err, ErrTabNeedsLogin)

	assert.Empty(t, creator.got.Items, "no request goes out on validation failure")
	assert.Equal(t, 3, crt.TotalItems(), "cart untouched")
}

func TestPlace_TabOrderUsesContaMethod(t *testing.T) {
	store := state.NewMemStore()
	crt := newCartWith(t, store)
	creator := &fakeCreator{resp: &api.Order{ID: "o2", Status: string(StatusTab)}}

	_, err := NewCheckout(creator, store).Place(context.Background(), crt, PlaceRequest{
		CustomerName: "Maria",
		MemberID:     "m1",
		BillToTab:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, api.PaymentConta, creator.got.PaymentMethod)
	assert.Equal(t, "m1", creator.got.MemberID)
}

func TestPlace_APIFailureLeavesStateAlone(t *testing.T) {
	store := state.NewMemStore()
	crt := newCartWith(t, store)
	creator := &fakeCreator{err: errors.New("boom")}

	_, err := NewCheckout(creator, store).Place(context.Background(), crt, PlaceRequest{CustomerName: "João"})
	require.Error(t, err)

	_, ok := Active(store)
	assert.False(t, ok, "no active order recorded")
	assert.Equal(t, 3, crt.TotalItems(), "cart keeps its items")
}

func TestCompleteIfTerminal(t *testing.T) {
	store := state.NewMemStore()
	require.NoError(t, SetActive(store, "o1"))

	done, err := CompleteIfTerminal(store, StatusPreparing)
	require.NoError(t, err)
	assert.False(t, done)
	_, ok := Active(store)
	assert.True(t, ok, "in-flight order stays tracked")

	done, err = CompleteIfTerminal(store, StatusDelivered)
	require.NoError(t, err)
	assert.True(t, done)
	_, ok = Active(store)
	assert.False(t, ok, "delivered order is released for a new one")
}

func TestActive_RoundTrip(t *testing.T) {
	store := state.NewMemStore()

	_, ok := Active(store)
	assert.False(t, ok)

	require.NoError(t, SetActive(store, "o9"))
	id, ok := Active(store)
	require.True(t, ok)
	assert.Equal(t, "o9", id)

	require.NoError(t, ClearActive(store))
	_, ok = Active(store)
	assert.False(t, ok)
}
