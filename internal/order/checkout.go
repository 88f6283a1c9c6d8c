package order

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/identity"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

// Validation errors surfaced before any request goes out.
var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNameRequired  = errors.New("customer name is required")
	ErrTabNeedsLogin = errors.New("billing to the tab requires a member login")
)

// Creator is the slice of the API client used to place orders.
type Creator interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.Order, error)
}

// Checkout turns the local cart into a placed order.
type Checkout struct {
	orders Creator
	store  state.Store
}

// NewCheckout wires the checkout use case.
func NewCheckout(orders Creator, store state.Store) *Checkout {
	return &Checkout{orders: orders, store: store}
}

// PlaceRequest carries everything checkout needs beyond the cart itself.
type PlaceRequest struct {
	Identity     identity.Identity
	CustomerName string
	Observations string
	// MemberID links the order to a logged-in member; empty for anonymous.
	MemberID string
	// BillToTab bills the order to the member's monthly tab instead of pix.
	BillToTab bool
}

// Place creates the order from the current cart. On success the returned
// order id is persisted as the active order and the cart is cleared — in
// that sequence, so a failure right after creation still leaves the order
// trackable. On API failure nothing local is mutated.
func (c *Checkout) Place(ctx context.Context, crt *cart.Cart, req PlaceRequest) (*api.Order, error) {
	if crt.TotalItems() == 0 {
		return nil, ErrEmptyCart
	}
	if req.CustomerName == "" {
		return nil, ErrNameRequired
	}
	method := api.PaymentPix
	if req.BillToTab {
		if req.MemberID == "" {
			return nil, ErrTabNeedsLogin
		}
		method = api.PaymentConta
	}

	items := crt.Items()
	lines := make([]api.OrderItemRequest, len(items))
	for i, it := range items {
		lines[i] = api.OrderItemRequest{ItemID: it.ID, Quantity: it.Quantity}
	}

	placed, err := c.orders.CreateOrder(ctx, api.CreateOrderRequest{
		SessionID:     req.Identity.SessionID,
		TableNumber:   req.Identity.TableNumber,
		CustomerName:  req.CustomerName,
		Observations:  req.Observations,
		MemberID:      req.MemberID,
		PaymentMethod: method,
		Items:         lines,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if err := SetActive(c.store, placed.ID); err != nil {
		return nil, err
	}
	if err := crt.Clear(); err != nil {
		return nil, errors.Wrap(err, "clear cart")
	}
	return placed, nil
}

// SetActive persists orderID as the session's tracked order.
func SetActive(store state.Store, orderID string) error {
	raw, _ := json.Marshal(orderID)
	if err := store.Set(state.KeyActiveOrder, raw); err != nil {
		return errors.Wrap(err, "persist active order")
	}
	return nil
}

// Active returns the tracked order id, if any.
func Active(store state.Store) (string, bool) {
	raw, ok := store.Get(state.KeyActiveOrder)
	if !ok {
		return "", false
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// ClearActive drops the tracked order ("new order" after delivery).
func ClearActive(store state.Store) error {
	if err := store.Delete(state.KeyActiveOrder); err != nil {
		return errors.Wrap(err, "clear active order")
	}
	return nil
}

// CompleteIfTerminal clears the tracked order once it reaches a final state,
// freeing the session to place a new one. Reports whether it cleared.
func CompleteIfTerminal(store state.Store, s Status) (bool, error) {
	if !Terminal(s) {
		return false, nil
	}
	if err := ClearActive(store); err != nil {
		return false, err
	}
	return true, nil
}
