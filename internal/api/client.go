// Package api is the typed client for the remote cardapio API. Every call is
// a direct pass-through: the server owns pricing, order lifecycle, payment
// verification, and persistence.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/pkg/httpclient"
)

// CredentialSource exposes the two bearer namespaces read per request.
type CredentialSource interface {
	// StaffToken is the restaurant dashboard credential.
	StaffToken() string
	// MemberToken is the customer member credential.
	MemberToken() string
}

// SelectToken picks the credential for a request path: staff- and
// auth-prefixed paths use the staff credential, member-prefixed paths use the
// member credential, everything else prefers the member credential and falls
// back to staff.
func SelectToken(creds CredentialSource, path string) string {
	trimmed := path
	if i := strings.Index(trimmed, "/api/"); i >= 0 {
		trimmed = trimmed[i+4:]
	}
	switch {
	case strings.HasPrefix(trimmed, "/restaurant"), strings.HasPrefix(trimmed, "/auth"):
		return creds.StaffToken()
	case strings.HasPrefix(trimmed, "/members"):
		return creds.MemberToken()
	}
	if tok := creds.MemberToken(); tok != "" {
		return tok
	}
	return creds.StaffToken()
}

// StatusError is a non-2xx API response, carrying the server's detail text.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is a 401 response (invalid credentials).
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// ClientConfig configures the API client.
type ClientConfig struct {
	// BaseURL including the API path prefix, e.g. "https://host/api".
	BaseURL string
	// Credentials feeds the bearer middleware. Optional.
	Credentials CredentialSource
	// Middlewares are appended after the default chain. Used by tests.
	Middlewares []httpclient.Middleware
	// Timeout for a single request. Zero means 15s.
	Timeout time.Duration
}

// Client issues requests against the remote API.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a Client with the standard middleware chain: request IDs,
// bearer selection, and a small retry budget for read-only fetches.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	mws := []httpclient.Middleware{
		httpclient.RequestID(),
		httpclient.LogRequests(),
	}
	if cfg.Credentials != nil {
		creds := cfg.Credentials
		mws = append(mws, httpclient.Bearer(func(path string) string {
			return SelectToken(creds, path)
		}))
	}
	mws = append(mws, httpclient.Retry(httpclient.RetryConfig{
		MaxRetries: 2,
		Delay:      300 * time.Millisecond,
	}))
	mws = append(mws, cfg.Middlewares...)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		base: base,
		http: &http.Client{
			Transport: httpclient.Wrap(nil, mws...),
			Timeout:   timeout,
		},
	}, nil
}

// WebsocketURL derives the push channel endpoint from the API base URL.
func (c *Client) WebsocketURL() string {
	u := *c.base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/restaurant"
	return u.String()
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// sendJSON issues method with a JSON body and decodes the response into out
// (out may be nil for empty responses).
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		rd = bytes.NewReader(raw)
	}
	req, err := c.newRequest(ctx, method, path, nil, rd, "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStatusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// decodeStatusError extracts the API's {"detail": "..."} error body when
// present.
func decodeStatusError(resp *http.Response) error {
	se := &StatusError{Code: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
			se.Message = body.Detail
		}
	}
	return se
}
