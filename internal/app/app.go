// Package app wires the client stack: configuration, the persisted state
// container, the API client, and the stores built on both. Both binaries go
// through Setup so they agree on state layout and credentials.
package app

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/identity"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/member"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/pkg/httpclient"
)

// Env is the assembled client environment shared by the command
// implementations.
type Env struct {
	Config   *Config
	Store    state.Store
	API      *api.Client
	Identity *identity.Resolver
	Cart     *cart.Cart
	Member   *member.Session
}

// Setup opens the state container and builds the API client and stores on
// top of it. m may be nil to skip HTTP instrumentation.
func Setup(cfg *Config, m *app.Telemetry) (*Env, error) {
	store, err := state.OpenFileStore(cfg.StateDir)
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}

	var mws []httpclient.Middleware
	if m != nil {
		mws = append(mws, httpclient.Instrument(m.MeterProvider(), m.TracerProvider()))
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:     cfg.BaseURL,
		Credentials: storeCredentials{store: store},
		Middlewares: mws,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build api client")
	}

	return &Env{
		Config:   cfg,
		Store:    store,
		API:      client,
		Identity: identity.NewResolver(store),
		Cart:     cart.Load(store),
		Member:   member.NewSession(store),
	}, nil
}

// PublicURL is the customer-facing menu address, for printed table links.
func (e *Env) PublicURL() (string, error) {
	if e.Config.PublicURL != "" {
		return strings.TrimSuffix(e.Config.PublicURL, "/"), nil
	}
	u, err := url.Parse(e.Config.BaseURL)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}
	u.Path = ""
	return u.String(), nil
}

// StaffLogin persists the staff bearer credential.
func (e *Env) StaffLogin(token string) error {
	raw, _ := json.Marshal(token)
	if err := e.Store.Set(state.KeyStaffToken, raw); err != nil {
		return errors.Wrap(err, "persist staff token")
	}
	return nil
}

// StaffLogout clears the staff credential.
func (e *Env) StaffLogout() error {
	if err := e.Store.Delete(state.KeyStaffToken); err != nil {
		return errors.Wrap(err, "clear staff token")
	}
	return nil
}

// storeCredentials reads both bearer namespaces from the state container on
// every request, so a login in one command is visible to the next without
// rebuilding the client.
type storeCredentials struct {
	store state.Store
}

func (c storeCredentials) StaffToken() string {
	return c.readToken(state.KeyStaffToken)
}

func (c storeCredentials) MemberToken() string {
	return c.readToken(state.KeyMemberToken)
}

func (c storeCredentials) readToken(key string) string {
	raw, ok := c.store.Get(key)
	if !ok {
		return ""
	}
	var tok string
	if err := json.Unmarshal(raw, &tok); err != nil {
		return ""
	}
	return tok
}
