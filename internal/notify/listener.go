// Package notify receives push notifications from the restaurant websocket
// channel. Notifications are a refresh hint, not the source of truth: every
// consumer re-reads state through the API after an event fires.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event names published on the restaurant channel.
const (
	EventNewOrder        = "novo_pedido"
	EventPaymentDeclared = "pagamento_declarado"
	EventStatusUpdated   = "status_atualizado"
)

// Message is the wire envelope: an event name plus an event-specific payload.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OrderRef is the payload shape shared by all order events.
type OrderRef struct {
	OrderID     string `json:"order_id"`
	TableNumber int    `json:"table_number"`
	Status      string `json:"status,omitempty"`
}

// Handler reacts to decoded events. Methods run on the listener goroutine;
// implementations should hand off anything slow.
type Handler interface {
	OnNewOrder(ctx context.Context, ref OrderRef)
	OnPaymentDeclared(ctx context.Context, ref OrderRef)
	OnStatusUpdated(ctx context.Context, ref OrderRef)
}

// HandlerFuncs adapts plain funcs to Handler; nil funcs ignore the event.
type HandlerFuncs struct {
	NewOrder        func(ctx context.Context, ref OrderRef)
	PaymentDeclared func(ctx context.Context, ref OrderRef)
	StatusUpdated   func(ctx context.Context, ref OrderRef)
}

func (h HandlerFuncs) OnNewOrder(ctx context.Context, ref OrderRef) {
	if h.NewOrder != nil {
		h.NewOrder(ctx, ref)
	}
}

func (h HandlerFuncs) OnPaymentDeclared(ctx context.Context, ref OrderRef) {
	if h.PaymentDeclared != nil {
		h.PaymentDeclared(ctx, ref)
	}
}

func (h HandlerFuncs) OnStatusUpdated(ctx context.Context, ref OrderRef) {
	if h.StatusUpdated != nil {
		h.StatusUpdated(ctx, ref)
	}
}

// DefaultReconnectDelay is the flat pause between connection attempts. The
// dashboard keeps a 10s fallback poll running, so the listener does not need
// aggressive backoff tuning.
const DefaultReconnectDelay = 3 * time.Second

// Listener maintains a websocket subscription to the restaurant channel,
// reconnecting with a flat delay until the context ends.
type Listener struct {
	url     string
	handler Handler
	dialer  *websocket.Dialer
	delay   time.Duration
}

// NewListener builds a listener for the given websocket URL.
func NewListener(url string, handler Handler) *Listener {
	return &Listener{
		url:     url,
		handler: handler,
		dialer:  websocket.DefaultDialer,
		delay:   DefaultReconnectDelay,
	}
}

// Run connects and dispatches messages until ctx is done. Connection and
// read failures are logged and followed by a reconnect; Run only returns
// the context error.
func (l *Listener) Run(ctx context.Context) error {
	lg := zctx.From(ctx).With(zap.String("ws_url", l.url))
	for {
		if err := l.readLoop(ctx); err != nil && ctx.Err() == nil {
			lg.Warn("Websocket connection lost", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.delay):
		}
	}
}

func (l *Listener) readLoop(ctx context.Context) error {
	conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	// Unblock ReadMessage when the context ends mid-read.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		l.dispatch(ctx, raw)
	}
}

func (l *Listener) dispatch(ctx context.Context, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		zctx.From(ctx).Debug("Dropping undecodable message", zap.Error(err))
		return
	}
	var ref OrderRef
	if len(msg.Data) > 0 {
		// Payload fields beyond OrderRef are ignored; consumers refetch.
		_ = json.Unmarshal(msg.Data, &ref)
	}

	switch msg.Event {
	case EventNewOrder:
		l.handler.OnNewOrder(ctx, ref)
	case EventPaymentDeclared:
		l.handler.OnPaymentDeclared(ctx, ref)
	case EventStatusUpdated:
		l.handler.OnStatusUpdated(ctx, ref)
	default:
		zctx.From(ctx).Debug("Dropping unknown event", zap.String("event", msg.Event))
	}
}
