package users_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/reqcheck/modules/users"
)

func newService(storage users.Storage) *users.Service {
	return users.NewService(storage, users.WithBcryptCost(bcrypt.MinCost))
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var body struct {
		Errors []map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Errors
}

// brokenStorage fails every lookup.
type brokenStorage struct{}

var errStorageDown = errors.New("storage down")

func (brokenStorage) CreateUser(context.Context, *users.User) error { return errStorageDown }

func (brokenStorage) GetUserByEmail(context.Context, string) (*users.User, error) {
	return nil, errStorageDown
}
