package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrument returns a middleware that wraps the transport with otelhttp for
// spans plus request count and duration metrics keyed by method and status.
func Instrument(mp metric.MeterProvider, tp trace.TracerProvider) Middleware {
	meter := mp.Meter("pkg/httpclient")
	requests, _ := meter.Int64Counter("http.client.requests",
		metric.WithDescription("Outbound API requests"))
	duration, _ := meter.Float64Histogram("http.client.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Outbound API request duration"))

	return func(next http.RoundTripper) http.RoundTripper {
		traced := otelhttp.NewTransport(next,
			otelhttp.WithMeterProvider(mp),
			otelhttp.WithTracerProvider(tp),
		)
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := traced.RoundTrip(r)

			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.Int("status", status),
			)
			requests.Add(r.Context(), 1, attrs)
			duration.Record(r.Context(), float64(time.Since(start).Milliseconds()), attrs)
			return resp, err
		})
	}
}
