package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreds struct {
	staff, member string
}

func (f fakeCreds) StaffToken() string  { return f.staff }
func (f fakeCreds) MemberToken() string { return f.member }

func TestSelectToken(t *testing.T) {
	both := fakeCreds{staff: "S", member: "M"}
	staffOnly := fakeCreds{staff: "S"}
	memberOnly := fakeCreds{member: "M"}

	tests := []struct {
		name  string
		creds fakeCreds
		path  string
		want  string
	}{
		{"restaurant path uses staff", both, "/api/restaurant/orders", "S"},
		{"auth path uses staff", both, "/api/auth/login", "S"},
		{"member path uses member", both, "/api/members/me/tab", "M"},
		{"member path without member token stays empty", staffOnly, "/api/members/me", ""},
		{"other path prefers member", both, "/api/orders/o1", "M"},
		{"other path with member only", memberOnly, "/api/orders/o1", "M"},
		{"restaurant path without staff token stays empty", memberOnly, "/api/restaurant/orders", ""},
		{"other path falls back to staff", staffOnly, "/api/items", "S"},
		{"other path with neither", fakeCreds{}, "/api/menu", ""},
		{"path without api prefix", both, "/restaurant/history", "S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectToken(tt.creds, tt.path))
		})
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, creds CredentialSource) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{
		BaseURL:     srv.URL + "/api",
		Credentials: creds,
	})
	require.NoError(t, err)
	return c
}

func TestGetMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/menu", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"c1","name":"Caldos","active":true,"items":[
				{"id":"p1","name":"Caldo de Feijão","price":14.9,"active":true,"category_id":"c1","member_price":12.5}
			]}
		]`))
	}))
	defer srv.Close()

	menu, err := newTestClient(t, srv, fakeCreds{}).GetMenu(context.Background())
	require.NoError(t, err)

	require.Len(t, menu, 1)
	require.Len(t, menu[0].Items, 1)
	it := menu[0].Items[0]
	assert.True(t, it.Price.Equal(decimal.RequireFromString("14.9")))
	require.NotNil(t, it.MemberPrice)
	assert.True(t, it.MemberPrice.Equal(decimal.RequireFromString("12.5")))
}

func TestCreateOrder_SendsIdentityAndItems(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"o1","status":"aguardando_pagamento","total":23.4,"pix_payload":"000201..."}`))
	}))
	defer srv.Close()

	order, err := newTestClient(t, srv, fakeCreds{}).CreateOrder(context.Background(), CreateOrderRequest{
		SessionID:     "s1",
		TableNumber:   7,
		CustomerName:  "João",
		PaymentMethod: PaymentPix,
		Items:         []OrderItemRequest{{ItemID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "000201...", order.PixPayload)
	assert.Contains(t, gotBody, `"table_number":7`)
	assert.Contains(t, gotBody, `"payment_method":"pix"`)
	assert.Contains(t, gotBody, `"item_id":"p1"`)
	assert.NotContains(t, gotBody, "member_id", "anonymous order omits the member reference")
}

func TestStatusError_CarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Pedido não encontrado"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, fakeCreds{}).GetOrder(context.Background(), "missing")
	require.Error(t, err)

	assert.True(t, IsNotFound(err))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Pedido não encontrado", se.Message)
}

func TestLogin_MultipartFormAndUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		if r.FormValue("username") != "admin" || r.FormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Usuário ou senha incorretos"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, fakeCreds{})

	resp, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)

	_, err = c.Login(context.Background(), "admin", "wrong")
	assert.True(t, IsUnauthorized(err))
}

func TestBearerSelection_EndToEnd(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, fakeCreds{staff: "staff-tok", member: "member-tok"})

	_, err := c.ActiveOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer staff-tok", auth)

	_, err = c.MemberTabs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer member-tok", auth)

	_, err = c.GetSessionOrders(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer member-tok", auth, "plain paths prefer the member credential")
}

func TestWebsocketURL(t *testing.T) {
	c, err := NewClient(ClientConfig{BaseURL: "https://pedidos.example.com/api"})
	require.NoError(t, err)
	assert.Equal(t, "wss://pedidos.example.com/api/ws/restaurant", c.WebsocketURL())

	c, err = NewClient(ClientConfig{BaseURL: "http://localhost:8000/api/"})
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8000/api/ws/restaurant", c.WebsocketURL())
}

func TestNewClient_RejectsRelativeBase(t *testing.T) {
	_, err := NewClient(ClientConfig{BaseURL: "/api"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "absolute"))
}
