package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket keeps one x/time/rate limiter per key in memory. Buckets idle
// for longer than the idle TTL are dropped on the next sweep.
type TokenBucket struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type TokenBucketOption func(*TokenBucket)

// WithIdleTTL sets how long an unused bucket is kept.
func WithIdleTTL(d time.Duration) TokenBucketOption {
	return func(tb *TokenBucket) {
		if d > 0 {
			tb.idleTTL = d
		}
	}
}

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) TokenBucketOption {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// NewTokenBucket creates a limiter refilling rps tokens per second into
// buckets holding at most burst tokens.
func NewTokenBucket(rps float64, burst int, opts ...TokenBucketOption) (*TokenBucket, error) {
	if rps <= 0 || math.IsInf(rps, 0) || math.IsNaN(rps) {
		return nil, ErrInvalidLimit
	}
	if burst <= 0 {
		return nil, ErrInvalidBurst
	}

	tb := &TokenBucket{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.lastSweep = tb.now()
	return tb, nil
}

func (tb *TokenBucket) Allow(_ context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := tb.now()
	lim := tb.get(key, now)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	resetAt := now
	if tokens < 1 {
		missing := 1 - tokens
		resetAt = now.Add(time.Duration(missing / float64(tb.limit) * float64(time.Second)))
	}

	return &Result{
		Allowed:   allowed,
		Limit:     tb.burst,
		Remaining: max(0, int(tokens)),
		ResetAt:   resetAt,
	}, nil
}

func (tb *TokenBucket) Reset(_ context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	tb.mu.Lock()
	delete(tb.buckets, key)
	tb.mu.Unlock()
	return nil
}

func (tb *TokenBucket) get(key string, now time.Time) *rate.Limiter {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if now.Sub(tb.lastSweep) >= tb.idleTTL {
		for k, b := range tb.buckets {
			if now.Sub(b.lastSeen) >= tb.idleTTL {
				delete(tb.buckets, k)
			}
		}
		tb.lastSweep = now
	}

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(tb.limit, tb.burst)}
		tb.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// size reports the number of live buckets.
func (tb *TokenBucket) size() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}
