package validator

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/reqcheck/pkg/async"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
)

// Runner evaluates a set of chains against a request. Each chain runs in its
// own goroutine; the runner joins all of them before completing.
type Runner struct {
	chains []*Chain
	log    *slog.Logger
}

// NewRunner creates a runner for the given chains. Nil chains are skipped.
func NewRunner(chains []*Chain, opts ...Option) *Runner {
	o := newOptions(opts...)
	r := &Runner{log: o.logger}
	for _, c := range chains {
		if c != nil {
			r.chains = append(r.chains, c)
		}
	}
	return r
}

// Start begins validation and returns a future that resolves with the result
// once every chain has finished. The future never rejects.
//
// Validation is not cancelled when ctx is done: once started, every chain
// runs to completion.
func (r *Runner) Start(ctx context.Context, req *Request) *async.Future[Result] {
	return async.Go(context.WithoutCancel(ctx), func(ctx context.Context) (Result, error) {
		c := NewCollector()
		r.runInto(ctx, req, c)
		return c.Result(), nil
	})
}

// Run validates the request and blocks until every chain has finished.
func (r *Runner) Run(ctx context.Context, req *Request) Result {
	c := NewCollector()
	r.runInto(context.WithoutCancel(ctx), req, c)
	return c.Result()
}

// runInto evaluates all chains concurrently and pushes failures into c in
// completion order. It returns after the last chain is done.
func (r *Runner) runInto(ctx context.Context, req *Request, c *Collector) {
	if len(r.chains) == 0 {
		return
	}

	type result struct {
		chain *Chain
		out   chainOutcome
	}

	start := time.Now()
	results := make(chan result, len(r.chains))
	for _, chain := range r.chains {
		go func() {
			results <- result{chain: chain, out: r.evaluate(ctx, chain, req)}
		}()
	}

	failed := 0
	for range r.chains {
		res := <-results
		if res.out.sanitized && res.out.value.IsPresent() {
			c.setSanitized(res.out.loc, res.chain.Field(), res.out.value.Raw())
		}
		if res.out.err != nil {
			c.push(*res.out.err)
			failed++
		}
	}

	r.log.DebugContext(ctx, "request validated",
		logger.Component("validator"),
		slog.Int("chains", len(r.chains)),
		slog.Int("failed", failed),
		logger.Duration(time.Since(start)),
	)
}

// evaluate runs one chain. A panic escaping a rule or sanitizer fails the
// chain with the default message instead of crashing the request.
func (r *Runner) evaluate(ctx context.Context, chain *Chain, req *Request) (out chainOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.ErrorContext(ctx, "validation chain panicked",
				logger.Component("validator"),
				logger.Field(chain.Field()),
				slog.Any("panic", rec),
			)
			verr := &ValidationError{
				Location: chain.Location(),
				Field:    chain.Field(),
				Message:  DefaultMessage,
			}
			if verr.Location == "" {
				verr.Location = LocationBody
			}
			out = chainOutcome{err: verr}
		}
	}()

	out = chain.run(ctx, req)
	if out.err != nil {
		r.log.DebugContext(ctx, "validation chain failed",
			logger.Component("validator"),
			logger.Field(out.err.Field),
			logger.Rule(out.err.Rule),
		)
	}
	return out
}
