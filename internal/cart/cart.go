// Package cart implements the local cart aggregate: the ordered set of menu
// items picked for the current visit, persisted across restarts until the
// order is placed.
package cart

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

// Item is one distinct menu item in the cart. Price is frozen at add time:
// later catalog changes never reprice items already picked.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"image_url,omitempty"`
}

// Cart is the persisted cart aggregate. Items keep insertion order. All
// mutations are written through to the state container before returning.
type Cart struct {
	store state.Store
	items []Item
}

// Load reads the persisted cart from store. A missing or undecodable value
// yields an empty cart.
func Load(store state.Store) *Cart {
	c := &Cart{store: store}
	raw, ok := store.Get(state.KeyCart)
	if !ok {
		return c
	}
	if err := json.Unmarshal(raw, &c.items); err != nil {
		c.items = nil
	}
	return c
}

// AddItem adds one unit of the given item. An item already in the cart has
// its quantity incremented; its frozen price is kept even if price differs.
func (c *Cart) AddItem(id, name string, price decimal.Decimal, imageURL string) error {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	c.items = append(c.items, Item{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: 1,
		ImageURL: imageURL,
	})
	return c.persist()
}

// UpdateQuantity sets the quantity of id to quantity exactly. A quantity of
// zero or less removes the item.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(id)
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return c.persist()
		}
	}
	return nil
}

// RemoveItem deletes the item. Removing an absent item is a no-op.
func (c *Cart) RemoveItem(id string) error {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.items = nil
	return c.persist()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the exact sum of frozen price times quantity over all items.
// Rounding to two decimals happens only at presentation, via FormatBRL.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) persist() error {
	raw, err := json.Marshal(c.items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := c.store.Set(state.KeyCart, raw); err != nil {
		return errors.Wrap(err, "persist cart")
	}
	return nil
}

// FormatBRL renders a monetary value the way the menu displays it:
// "R$ 12,50", two decimals, comma separator.
func FormatBRL(v decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(v.StringFixed(2), ".", ",")
}
