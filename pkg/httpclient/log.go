package httpclient

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogRequests returns a middleware that logs every outbound request with the
// context logger: method, path, status, and duration. Failures log at warn,
// everything else at debug.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			lg := zctx.From(r.Context())
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case err != nil:
				lg.Warn("Request failed", append(fields, zap.Error(err))...)
			case resp.StatusCode >= 400:
				lg.Warn("Request rejected", append(fields, zap.Int("status", resp.StatusCode))...)
			default:
				lg.Debug("Request", append(fields, zap.Int("status", resp.StatusCode))...)
			}
			return resp, err
		})
	}
}
