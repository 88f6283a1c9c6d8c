package staff

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/member"
)

// Member administration validation errors.
var (
	ErrMemberNameRequired  = errors.New("member name is required")
	ErrMemberEmailRequired = errors.New("member email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrAmountNotPositive   = errors.New("payment amount must be greater than zero")
)

// MembersAPI is the slice of the API client the members controller drives.
type MembersAPI interface {
	ListMembers(ctx context.Context) ([]member.Profile, error)
	CreateMember(ctx context.Context, req api.MemberRequest) (*member.Profile, error)
	UpdateMember(ctx context.Context, id string, req api.MemberRequest) (*member.Profile, error)
	DeleteMember(ctx context.Context, id string) error
	MemberTabsFor(ctx context.Context, memberID string) ([]api.MemberTab, error)
	TabOrdersFor(ctx context.Context, memberID, tabID string) ([]api.OrderSummary, error)
	RegisterTabPayment(ctx context.Context, memberID, tabID string, amount decimal.Decimal, notes string) (*api.MemberTab, error)
	GenerateTabPix(ctx context.Context, memberID, tabID string) (*api.TabPix, error)
}

// Members is the member account administration controller.
type Members struct {
	api MembersAPI
}

// NewMembers wires the members controller.
func NewMembers(a MembersAPI) *Members {
	return &Members{api: a}
}

// List returns all member accounts.
func (m *Members) List(ctx context.Context) ([]member.Profile, error) {
	return m.api.ListMembers(ctx)
}

// Create registers a member. Name, email and password are mandatory.
func (m *Members) Create(ctx context.Context, req api.MemberRequest) (*member.Profile, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, ErrMemberNameRequired
	}
	if req.Email == nil || *req.Email == "" {
		return nil, ErrMemberEmailRequired
	}
	if req.Password == nil || *req.Password == "" {
		return nil, ErrPasswordRequired
	}
	return m.api.CreateMember(ctx, req)
}

// Update patches a member account, validating only the fields present.
func (m *Members) Update(ctx context.Context, id string, req api.MemberRequest) (*member.Profile, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, ErrMemberNameRequired
	}
	if req.Email != nil && *req.Email == "" {
		return nil, ErrMemberEmailRequired
	}
	return m.api.UpdateMember(ctx, id, req)
}

// Deactivate keeps the account and its tab history but blocks new logins.
// This is the preferred way to retire a member.
func (m *Members) Deactivate(ctx context.Context, id string) (*member.Profile, error) {
	return m.api.UpdateMember(ctx, id, api.MemberRequest{Active: BoolPtr(false)})
}

// Delete removes the account entirely, after explicit confirmation.
func (m *Members) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return m.api.DeleteMember(ctx, id)
}

// Tabs lists a member's monthly tabs.
func (m *Members) Tabs(ctx context.Context, memberID string) ([]api.MemberTab, error) {
	return m.api.MemberTabsFor(ctx, memberID)
}

// TabOrders lists the orders billed to one tab.
func (m *Members) TabOrders(ctx context.Context, memberID, tabID string) ([]api.OrderSummary, error) {
	return m.api.TabOrdersFor(ctx, memberID, tabID)
}

// RegisterPayment records a payment against a tab. The amount must be
// positive; the server clamps overpayments.
func (m *Members) RegisterPayment(ctx context.Context, memberID, tabID string, amount decimal.Decimal, notes string) (*api.MemberTab, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	return m.api.RegisterTabPayment(ctx, memberID, tabID, amount, notes)
}

// GenerateTabPix produces a pix charge for the tab's open balance.
func (m *Members) GenerateTabPix(ctx context.Context, memberID, tabID string) (*api.TabPix, error) {
	return m.api.GenerateTabPix(ctx, memberID, tabID)
}
