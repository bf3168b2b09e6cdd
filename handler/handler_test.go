package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqcheck/handler"
)

type greeting struct {
	Name string
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		bind := func(r *http.Request, v any) error {
			v.(*greeting).Name = r.URL.Query().Get("name")
			return nil
		}
		h := handler.Wrap(func(_ handler.Context, req greeting) handler.Response {
			return handler.Text("hello " + req.Name)
		}, handler.WithBinder[handler.Context, greeting](bind))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?name=ann", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello ann", rec.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("binder error", func(t *testing.T) {
		t.Parallel()
		bind := func(*http.Request, any) error { return handler.ErrBadRequest }
		h := handler.Wrap(func(handler.Context, greeting) handler.Response {
			t.Error("handler must not run")
			return nil
		}, handler.WithBinders[handler.Context, greeting](bind))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(handler.Context, greeting) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, greeting](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("plain errors are 500", func(t *testing.T) {
		t.Parallel()
		bind := func(*http.Request, any) error { return errors.New("boom") }
		h := handler.Wrap(func(handler.Context, greeting) handler.Response { return handler.Empty() },
			handler.WithBinder[handler.Context, greeting](bind))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestDecoratorsOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, greeting] {
		return func(next handler.HandlerFunc[handler.Context, greeting]) handler.HandlerFunc[handler.Context, greeting] {
			return func(ctx handler.Context, req greeting) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(func(handler.Context, greeting) handler.Response {
		order = append(order, "handler")
		return handler.Empty()
	}, handler.WithDecorators(mark("outer"), mark("inner")))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type userKey struct{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(contextWith(r, userKey{}, 42))
	ctx := handler.NewContext(httptest.NewRecorder(), r)

	assert.Equal(t, 42, ctx.Value(userKey{}))
	assert.Nil(t, ctx.Value("missing"))
	assert.Same(t, r, ctx.Request())
	assert.True(t, ctx.Validation().IsEmpty())
}
