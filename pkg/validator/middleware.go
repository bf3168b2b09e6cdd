package validator

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqcheck/pkg/logger"
)

// BindFunc turns an incoming HTTP request into the request snapshot chains
// read from. See the binder package for the standard implementation.
type BindFunc func(r *http.Request) (*Request, error)

// BindErrorHandler responds to a request whose body could not be bound.
type BindErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures runners and middlewares.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	onBindError BindErrorHandler
}

func newOptions(opts ...Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
		onBindError: func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for validation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBindErrorHandler replaces the default 400 response sent when binding
// fails.
func WithBindErrorHandler(fn BindErrorHandler) Option {
	return func(o *options) {
		if fn != nil {
			o.onBindError = fn
		}
	}
}

type scopeKey struct{}

// scope is the per-request validation state shared by every validation
// middleware in a route's pipeline.
type scope struct {
	req       *Request
	collector *Collector
}

// Middleware returns an HTTP middleware that validates the request with all
// chains concurrently and then calls the next handler. It never rejects the
// request on validation failure; handlers read the outcome with ResultFrom.
//
// Several validation middlewares can be stacked on one route. The request is
// bound once, and errors from all of them accumulate into one result.
func Middleware(bind BindFunc, chains []*Chain, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts...)
	runner := NewRunner(chains, opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, r, err := ensureScope(r, bind)
			if err != nil {
				o.logger.WarnContext(r.Context(), "failed to bind request for validation",
					logger.Component("validator"),
					logger.Error(err),
				)
				o.onBindError(w, r, err)
				return
			}

			runner.runInto(context.WithoutCancel(r.Context()), s.req, s.collector)
			next.ServeHTTP(w, r)
		})
	}
}

// Middleware returns an HTTP middleware validating this chain only.
func (c *Chain) Middleware(bind BindFunc, opts ...Option) func(http.Handler) http.Handler {
	return Middleware(bind, []*Chain{c}, opts...)
}

// ensureScope returns the validation scope of r, binding the request and
// attaching a new scope when none exists yet.
func ensureScope(r *http.Request, bind BindFunc) (*scope, *http.Request, error) {
	if s, ok := r.Context().Value(scopeKey{}).(*scope); ok {
		return s, r, nil
	}

	req := &Request{HTTP: r}
	if bind != nil {
		bound, err := bind(r)
		if err != nil {
			return nil, r, err
		}
		if bound != nil {
			req = bound
			if req.HTTP == nil {
				req.HTTP = r
			}
		}
	}

	s := &scope{req: req, collector: NewCollector()}
	return s, r.WithContext(context.WithValue(r.Context(), scopeKey{}, s)), nil
}

// ResultFrom returns the validation result accumulated so far for the
// request. It is empty if no validation middleware ran.
func ResultFrom(ctx context.Context) Result {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.collector.Result()
	}
	return Result{}
}

// RequestFrom returns the bound request snapshot, if a validation middleware
// ran.
func RequestFrom(ctx context.Context) (*Request, bool) {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.req, true
	}
	return nil, false
}
