package binder

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

const (
	// DefaultMaxBodySize caps JSON and urlencoded bodies (1 MB).
	DefaultMaxBodySize = 1 << 20
	// DefaultMaxMemory is the in-memory part of multipart parsing (10 MB).
	DefaultMaxMemory = 10 << 20
)

// PathParamsFunc returns the path parameters matched by the router.
type PathParamsFunc func(r *http.Request) map[string]string

// Option configures Request.
type Option func(*options)

type options struct {
	maxBodySize int64
	maxMemory   int64
	pathParams  PathParamsFunc
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithMaxMemory overrides DefaultMaxMemory for multipart forms.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithPathParams replaces the chi route parameter lookup, for use with other
// routers.
func WithPathParams(fn PathParamsFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.pathParams = fn
		}
	}
}

// Request returns a validator.BindFunc that snapshots body, query, path
// parameters and headers of an HTTP request.
//
// JSON bodies must be objects. Urlencoded and multipart bodies become a map
// of string, or []string for repeated keys. Bodies of any other type, and
// empty bodies, yield an empty body map.
func Request(opts ...Option) validator.BindFunc {
	o := options{
		maxBodySize: DefaultMaxBodySize,
		maxMemory:   DefaultMaxMemory,
		pathParams:  ChiParams,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(r *http.Request) (*validator.Request, error) {
		req := &validator.Request{
			Query:   flatten(r.URL.Query()),
			Params:  o.pathParams(r),
			Headers: headers(r.Header),
			HTTP:    r,
		}
		if err := bindBody(r, req, o); err != nil {
			return nil, err
		}
		return req, nil
	}
}

// ChiParams returns the URL parameters chi matched for r.
func ChiParams(r *http.Request) map[string]string {
	params := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

// flatten keeps single values as strings and repeated values as []string.
func flatten(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			out[k] = ""
		case 1:
			out[k] = vs[0]
		default:
			out[k] = append([]string(nil), vs...)
		}
	}
	return out
}

func headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return out
}
