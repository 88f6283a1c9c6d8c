package httpclient

import (
	"net/http"
	"time"
)

// RetryConfig controls the bounded retry middleware.
type RetryConfig struct {
	// MaxRetries is the number of extra attempts after the first.
	MaxRetries int
	// Delay is the flat pause between attempts.
	Delay time.Duration
}

// Retry returns a middleware that retries GET and HEAD requests on transport
// errors and 5xx responses, up to the configured budget. Mutating methods are
// never retried: re-invoking the action is the user's call.
func Retry(cfg RetryConfig) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				return next.RoundTrip(r)
			}

			var (
				resp *http.Response
				err  error
			)
			for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
				if attempt > 0 {
					select {
					case <-r.Context().Done():
						return nil, r.Context().Err()
					case <-time.After(cfg.Delay):
					}
				}
				resp, err = next.RoundTrip(r)
				if err != nil {
					continue
				}
				if resp.StatusCode < 500 {
					return resp, nil
				}
				// Drain so the connection can be reused before retrying.
				if attempt < cfg.MaxRetries {
					resp.Body.Close()
				}
			}
			return resp, err
		})
	}
}
