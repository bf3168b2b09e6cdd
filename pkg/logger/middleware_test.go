package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqcheck/pkg/logger"
)

func TestMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))

	handler := logger.Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/user1", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	entry := decode(t, buf)
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, float64(2), entry["bytes"])
	assert.Equal(t, map[string]any{"method": "POST", "path": "/users/user1"}, entry["http"])
}

func TestMiddlewareDefaultsStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := logger.Middleware(logger.New(logger.WithOutput(buf)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, float64(http.StatusOK), decode(t, buf)["status"])
}

func TestMiddlewareLogsHeadersAtDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))
	handler := logger.Middleware(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	r := httptest.NewRequest(http.MethodPost, "/users/user1", nil)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Add("Accept", "text/html")
	r.Header.Add("Accept", "application/json")
	r.Header.Set("Authorization", "Bearer secret")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	dec := json.NewDecoder(buf)
	var received map[string]any
	require.NoError(t, dec.Decode(&received))
	assert.Equal(t, "request received", received["msg"])
	assert.Equal(t, map[string]any{
		"Accept":        "text/html, application/json",
		"Authorization": "[REDACTED]",
		"Content-Type":  "application/json",
	}, received["headers"])

	var completed map[string]any
	require.NoError(t, dec.Decode(&completed))
	assert.Equal(t, "request completed", completed["msg"])
	assert.NotContains(t, completed, "headers")
}
