package api

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/member"
)

// MemberLoginResponse is the member credential plus profile returned on
// member login.
type MemberLoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Member      member.Profile `json:"member"`
}

// MemberTab is one monthly tab: the accumulated consumption billed to the
// member instead of paid per order.
type MemberTab struct {
	ID            string          `json:"id"`
	MemberID      string          `json:"member_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalConsumed decimal.Decimal `json:"total_consumed"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Status        string          `json:"status"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Balance is the open amount of the tab.
func (t MemberTab) Balance() decimal.Decimal {
	return t.TotalConsumed.Sub(t.TotalPaid)
}

// MemberRequest creates or updates a member account.
type MemberRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
	Active   *bool   `json:"is_active,omitempty"`
}

// TabPix is the pix charge generated for an open tab balance.
type TabPix struct {
	PixPayload string          `json:"pix_payload"`
	QRCodeB64  string          `json:"qr_code_base64,omitempty"`
	Balance    decimal.Decimal `json:"saldo_devedor"`
}

// MemberLogin authenticates a member with email and password.
func (c *Client) MemberLogin(ctx context.Context, email, password string) (*MemberLoginResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out MemberLoginResponse
	if err := c.sendJSON(ctx, "POST", "/members/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MemberMe fetches the authenticated member's profile.
func (c *Client) MemberMe(ctx context.Context) (*member.Profile, error) {
	var out member.Profile
	if err := c.getJSON(ctx, "/members/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MemberTab fetches the authenticated member's current monthly tab.
func (c *Client) MemberTab(ctx context.Context) (*MemberTab, error) {
	var out MemberTab
	if err := c.getJSON(ctx, "/members/me/tab", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MemberTabOrders lists the orders billed to the current tab.
func (c *Client) MemberTabOrders(ctx context.Context) ([]OrderSummary, error) {
	var out []OrderSummary
	if err := c.getJSON(ctx, "/members/me/tab/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MemberTabs lists the member's tab history across months.
func (c *Client) MemberTabs(ctx context.Context) ([]MemberTab, error) {
	var out []MemberTab
	if err := c.getJSON(ctx, "/members/me/tabs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Member administration (staff credential) ---

// ListMembers lists all member accounts.
func (c *Client) ListMembers(ctx context.Context) ([]member.Profile, error) {
	var out []member.Profile
	if err := c.getJSON(ctx, "/restaurant/members", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMember registers a member account.
func (c *Client) CreateMember(ctx context.Context, req MemberRequest) (*member.Profile, error) {
	var out member.Profile
	if err := c.sendJSON(ctx, "POST", "/restaurant/members", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMember patches a member account. Deactivation is an update with
// Active=false.
func (c *Client) UpdateMember(ctx context.Context, id string, req MemberRequest) (*member.Profile, error) {
	var out member.Profile
	if err := c.sendJSON(ctx, "PUT", "/restaurant/members/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMember removes a member account.
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "DELETE", "/restaurant/members/"+id, nil, nil)
}

// MemberTabsFor lists a member's tabs (dashboard view).
func (c *Client) MemberTabsFor(ctx context.Context, memberID string) ([]MemberTab, error) {
	var out []MemberTab
	if err := c.getJSON(ctx, "/restaurant/members/"+memberID+"/tabs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TabOrdersFor lists the orders billed to one tab (dashboard view).
func (c *Client) TabOrdersFor(ctx context.Context, memberID, tabID string) ([]OrderSummary, error) {
	var out []OrderSummary
	if err := c.getJSON(ctx, "/restaurant/members/"+memberID+"/tabs/"+tabID+"/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterTabPayment records a partial or full payment against a tab.
func (c *Client) RegisterTabPayment(ctx context.Context, memberID, tabID string, amount decimal.Decimal, notes string) (*MemberTab, error) {
	body := struct {
		Amount decimal.Decimal `json:"amount"`
		Notes  string          `json:"notes,omitempty"`
	}{Amount: amount, Notes: notes}

	var out MemberTab
	if err := c.sendJSON(ctx, "POST", "/restaurant/members/"+memberID+"/tabs/"+tabID+"/payment", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateTabPix asks the server for a pix charge covering the tab's open
// balance.
func (c *Client) GenerateTabPix(ctx context.Context, memberID, tabID string) (*TabPix, error) {
	var out TabPix
	if err := c.sendJSON(ctx, "POST", "/restaurant/members/"+memberID+"/tabs/"+tabID+"/pix", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
