package api

import (
	"context"

	"github.com/shopspring/decimal"
)

// CategoryRequest creates or updates a category. Nil pointers are omitted on
// update so the server keeps the current value.
type CategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ItemRequest creates or updates a menu item.
type ItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MemberPrice *decimal.Decimal `json:"member_price,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// GetCategories lists all categories, active or not, for the dashboard.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.getJSON(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	var out Category
	if err := c.sendJSON(ctx, "POST", "/categories", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory patches a category.
func (c *Client) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*Category, error) {
	var out Category
	if err := c.sendJSON(ctx, "PUT", "/categories/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "DELETE", "/categories/"+id, nil, nil)
}

// GetItems lists all items for the dashboard.
func (c *Client) GetItems(ctx context.Context) ([]Item, error) {
	var out []Item
	if err := c.getJSON(ctx, "/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateItem adds a menu item.
func (c *Client) CreateItem(ctx context.Context, req ItemRequest) (*Item, error) {
	var out Item
	if err := c.sendJSON(ctx, "POST", "/items", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem patches a menu item.
func (c *Client) UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	var out Item
	if err := c.sendJSON(ctx, "PUT", "/items/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem removes a menu item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "DELETE", "/items/"+id, nil, nil)
}
