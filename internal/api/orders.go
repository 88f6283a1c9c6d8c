package api

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted by order creation.
const (
	PaymentPix   = "pix"   // pay now via the pix QR code
	PaymentConta = "conta" // bill to the member's monthly tab
)

// OrderItemRequest is one line of an order creation request.
type OrderItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest creates an order for a table session.
type CreateOrderRequest struct {
	SessionID     string             `json:"session_id"`
	TableNumber   int                `json:"table_number"`
	CustomerName  string             `json:"customer_name"`
	Observations  string             `json:"observations,omitempty"`
	MemberID      string             `json:"member_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItem is one line of a placed order, with the unit price the server
// charged (member pricing already resolved).
type OrderItem struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ItemName  string          `json:"item_name,omitempty"`
}

// Order is the remote-owned order resource as observed by the client.
type Order struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	TableNumber   int             `json:"table_number"`
	CustomerName  string          `json:"customer_name"`
	Observations  string          `json:"observations,omitempty"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	MemberID      string          `json:"member_id,omitempty"`
	PixPayload    string          `json:"pix_payload,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []OrderItem     `json:"items"`
}

// OrderSummary is the compact listing shape used by session history.
type OrderSummary struct {
	ID            string          `json:"id"`
	TableNumber   int             `json:"table_number"`
	CustomerName  string          `json:"customer_name"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateOrder places an order. The server computes the total and, for pix
// orders, attaches the payment payload.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := c.sendJSON(ctx, "POST", "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	if err := c.getJSON(ctx, "/orders/"+orderID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSessionOrders lists the orders placed by a session.
func (c *Client) GetSessionOrders(ctx context.Context, sessionID string) ([]OrderSummary, error) {
	var out []OrderSummary
	if err := c.getJSON(ctx, "/orders/session/"+sessionID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeclarePayment signals "I have paid" for an order awaiting payment. The
// status change itself is server-driven.
func (c *Client) DeclarePayment(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	if err := c.sendJSON(ctx, "POST", "/orders/"+orderID+"/declare-payment", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus requests a status transition (staff action).
func (c *Client) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	var out Order
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	if err := c.sendJSON(ctx, "PATCH", "/orders/"+orderID+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
