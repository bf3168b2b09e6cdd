package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/reqcheck/modules/users"
	"github.com/dmitrymomot/reqcheck/pkg/httpserver"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/requestid"
)

func testConfig() Config {
	return Config{
		CORSAllowedOrigins: []string{"https://example.com"},
		CORSMaxAge:         60,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
}

func testRouter(t *testing.T, cfg Config, checks ...httpserver.Check) http.Handler {
	t.Helper()
	svc := users.NewService(users.NewMemoryStorage(), users.WithBcryptCost(bcrypt.MinCost))
	h, err := newRouter(cfg, logger.Discard(), svc, checks...)
	require.NoError(t, err)
	return h
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	h := testRouter(t, testConfig())

	t.Run("index", func(t *testing.T) {
		t.Parallel()
		rec := do(h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "<h1>hello World!</h1>", rec.Body.String())
	})

	t.Run("hello", func(t *testing.T) {
		t.Parallel()
		rec := do(h, http.MethodGet, "/hello", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello World!", rec.Body.String())
	})

	t.Run("create task", func(t *testing.T) {
		t.Parallel()
		rec := do(h, http.MethodPost, "/createTask", `{"title":"write tests"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"foo":"bar"}`, rec.Body.String())
	})

	t.Run("request id is set", func(t *testing.T) {
		t.Parallel()
		rec := do(h, http.MethodGet, "/hello", "")
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	})

	t.Run("users are mounted", func(t *testing.T) {
		t.Parallel()
		rec := do(h, http.MethodPost, "/users/user1", `{"username":"foo@bar.com","password":"123"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Do not use a common word as the password")
	})

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := do(h, http.MethodGet, "/health/live", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	failing := func(context.Context) error { return errors.New("redis is down") }
	rec := do(testRouter(t, testConfig(), failing), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	passing := func(context.Context) error { return nil }
	rec = do(testRouter(t, testConfig(), passing), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())
}

func TestCORS(t *testing.T) {
	t.Parallel()

	h := testRouter(t, testConfig())

	r := httptest.NewRequest(http.MethodOptions, "/users/user1", nil)
	r.Header.Set("Origin", "https://example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/hello", nil)
	r.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	h := testRouter(t, cfg)

	require.Equal(t, http.StatusOK, do(h, http.MethodGet, "/hello", "").Code)

	rec := do(h, http.MethodGet, "/hello", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "too_many_requests")

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health/live", "").Code, "probes are not limited")
}

func TestInvalidRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimitRPS = 0
	_, err := newRouter(cfg, logger.Discard(), users.NewService(users.NewMemoryStorage()))
	assert.Error(t, err)
}
