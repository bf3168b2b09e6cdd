package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*Result, error) {
	return nil, errors.New("backend down")
}

func (failingLimiter) Reset(context.Context, string) error { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("panics without limiter or key func", func(t *testing.T) {
		t.Parallel()
		tb, err := NewTokenBucket(1, 1)
		require.NoError(t, err)

		assert.Panics(t, func() { Middleware(nil, Global()) })
		assert.Panics(t, func() { Middleware(tb, nil) })
	})

	t.Run("headers and throttling", func(t *testing.T) {
		t.Parallel()
		tb, err := NewTokenBucket(0.001, 2)
		require.NoError(t, err)
		h := Middleware(tb, ByIP())(okHandler())

		rec := serve(h, "192.0.2.1:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

		assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:1001").Code)

		rec = serve(h, "192.0.2.1:1002")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusOK, serve(h, "192.0.2.2:1000").Code, "other clients are unaffected")
	})

	t.Run("custom limit handler", func(t *testing.T) {
		t.Parallel()
		tb, err := NewTokenBucket(0.001, 1)
		require.NoError(t, err)

		var got *Result
		h := Middleware(tb, Global(), WithOnLimitReached(func(w http.ResponseWriter, _ *http.Request, res *Result) {
			got = res
			w.WriteHeader(http.StatusServiceUnavailable)
		}))(okHandler())

		assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:1").Code)
		assert.Equal(t, http.StatusServiceUnavailable, serve(h, "192.0.2.1:1").Code)
		require.NotNil(t, got)
		assert.False(t, got.Allowed)
	})

	t.Run("skip func", func(t *testing.T) {
		t.Parallel()
		tb, err := NewTokenBucket(0.001, 1)
		require.NoError(t, err)
		h := Middleware(tb, Global(), WithSkipFunc(func(*http.Request) bool { return true }))(okHandler())

		for range 3 {
			assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:1").Code)
		}
	})

	t.Run("empty key skips limiting", func(t *testing.T) {
		t.Parallel()
		tb, err := NewTokenBucket(0.001, 1)
		require.NoError(t, err)
		h := Middleware(tb, func(*http.Request) string { return "" })(okHandler())

		for range 3 {
			assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:1").Code)
		}
	})

	t.Run("fails open", func(t *testing.T) {
		t.Parallel()
		h := Middleware(failingLimiter{}, Global())(okHandler())

		rec := serve(h, "192.0.2.1:1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1"

	path := func(r *http.Request) string { return r.URL.Path }
	empty := func(*http.Request) string { return "" }
	long := func(*http.Request) string { return string(make([]byte, 100)) }

	assert.Equal(t, "ip:192.0.2.1", Composite(ByIP(), empty)(r))
	assert.Equal(t, "ip:192.0.2.1:/", Composite(ByIP(), path)(r))
	assert.Empty(t, Composite(empty)(r))

	hashed := Composite(ByIP(), long)(r)
	assert.Len(t, hashed, 32)
	assert.Equal(t, hashed, Composite(ByIP(), long)(r))
}
