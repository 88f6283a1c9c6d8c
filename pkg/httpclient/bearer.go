package httpclient

import "net/http"

// TokenSelector picks the bearer credential for a request path. An empty
// return means the request goes out unauthenticated.
type TokenSelector func(path string) string

// Bearer returns a middleware that sets the Authorization header using the
// selector. Requests that already carry an Authorization header are left
// untouched.
func Bearer(pick TokenSelector) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("Authorization") == "" {
				if tok := pick(r.URL.Path); tok != "" {
					r = r.Clone(r.Context())
					r.Header.Set("Authorization", "Bearer "+tok)
				}
			}
			return next.RoundTrip(r)
		})
	}
}
