package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqcheck/handler"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/requestid"
	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		level  string
	}{
		{"client error", handler.ErrConflict, http.StatusConflict, "WARN"},
		{"server error", errors.New("db down"), http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			onErr := handler.NewErrorHandler(logger.New(logger.WithOutput(buf)))

			r := httptest.NewRequest(http.MethodPost, "/users/user1", nil)
			r = r.WithContext(requestid.WithContext(r.Context(), "req-1"))
			rec := httptest.NewRecorder()
			onErr(handler.NewContext(rec, r), tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, float64(tt.status), entry["status"])
		})
	}
}

func TestNewErrorHandlerValidationErrors(t *testing.T) {
	t.Parallel()

	res := validator.NewRunner(validator.MustBuild(
		validator.Body("username").IsEmail(),
	)).Run(context.Background(), &validator.Request{Body: map[string]any{"username": "nope"}})
	require.False(t, res.IsEmpty())

	buf := &bytes.Buffer{}
	onErr := handler.NewErrorHandler(logger.New(logger.WithOutput(buf)))
	rec := httptest.NewRecorder()
	onErr(handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/users/user1", nil)), fmt.Errorf("signup: %w", res.Err()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"errors":[{"location":"body","field":"username","value":"nope","message":"must be a valid email address"}]}`,
		rec.Body.String())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
}
