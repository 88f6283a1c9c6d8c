package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/url"

	"github.com/go-faster/errors"
)

// LoginResponse is the bearer credential returned by staff authentication.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates the staff dashboard. The endpoint takes a multipart
// form, OAuth2 password-flow style.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("username", username); err != nil {
		return nil, errors.Wrap(err, "write form")
	}
	if err := w.WriteField("password", password); err != nil {
		return nil, errors.Wrap(err, "write form")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "close form")
	}

	req, err := c.newRequest(ctx, "POST", "/auth/login", nil, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveOrders lists the orders the dashboard is working: everything not yet
// delivered or cancelled.
func (c *Client) ActiveOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.getJSON(ctx, "/restaurant/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HistoryFilter narrows the order history listing. Zero fields are omitted.
type HistoryFilter struct {
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	CustomerName string
}

// History lists past orders matching the filter.
func (c *Client) History(ctx context.Context, f HistoryFilter) ([]Order, error) {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.CustomerName != "" {
		q.Set("customer_name", f.CustomerName)
	}

	var out []Order
	if err := c.getJSON(ctx, "/restaurant/history", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
