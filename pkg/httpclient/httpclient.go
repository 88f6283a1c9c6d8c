// Package httpclient provides composable http.RoundTripper middleware for
// outbound API calls: bearer injection, bounded retries for reads, request
// IDs, logging, and OpenTelemetry instrumentation.
package httpclient

import "net/http"

// Middleware wraps a RoundTripper with additional behaviour.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Wrap applies middlewares to base so that the first middleware is the
// outermost: Wrap(base, A, B) runs A, then B, then base.
func Wrap(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}
