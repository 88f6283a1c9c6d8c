package api

import (
	"context"

	"github.com/shopspring/decimal"
)

// Category groups menu items. The public menu returns only active categories
// with their active items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	Items       []Item `json:"items"`
}

// Item is one menu entry. MemberPrice, when set, is the discounted price
// applied server-side to member orders.
type Item struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	MemberPrice *decimal.Decimal `json:"member_price,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Active      bool             `json:"active"`
	CategoryID  string           `json:"category_id"`
}

// GetMenu fetches the public menu.
func (c *Client) GetMenu(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.getJSON(ctx, "/menu", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
