package httpclient

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Order(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
				trace = append(trace, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		trace = append(trace, "base")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})

	rt := Wrap(base, mw("outer"), mw("inner"))
	req := httptest.NewRequest(http.MethodGet, "http://x.test/", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "base"}, trace)
}

func TestBearer_SelectsByPath(t *testing.T) {
	var got string
	base := RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Get("Authorization")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})
	rt := Wrap(base, Bearer(func(path string) string {
		if path == "/api/restaurant/orders" {
			return "staff-token"
		}
		return ""
	}))

	req := httptest.NewRequest(http.MethodGet, "http://x.test/api/restaurant/orders", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "Bearer staff-token", got)

	req = httptest.NewRequest(http.MethodGet, "http://x.test/api/menu", nil)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBearer_KeepsExistingHeader(t *testing.T) {
	var got string
	base := RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Get("Authorization")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})
	rt := Wrap(base, Bearer(func(string) string { return "selected" }))

	req := httptest.NewRequest(http.MethodGet, "http://x.test/", nil)
	req.Header.Set("Authorization", "Bearer explicit")
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "Bearer explicit", got)
}

func TestRetry_RetriesGetOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Wrap(nil, Retry(RetryConfig{MaxRetries: 2, Delay: time.Millisecond}))}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_BudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Wrap(nil, Retry(RetryConfig{MaxRetries: 2, Delay: time.Millisecond}))}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_NeverRetriesMutations(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Wrap(nil, Retry(RetryConfig{MaxRetries: 2, Delay: time.Millisecond}))}
	resp, err := client.Post(srv.URL, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRetry_404IsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Wrap(nil, Retry(RetryConfig{MaxRetries: 2, Delay: time.Millisecond}))}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRequestID_Stamped(t *testing.T) {
	var first, second string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first == "" {
			first = r.Header.Get("X-Request-ID")
		} else {
			second = r.Header.Get("X-Request-ID")
		}
	}))
	defer srv.Close()

	client := &http.Client{Transport: Wrap(nil, RequestID())}
	for range 2 {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}
