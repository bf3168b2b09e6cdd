// Package ratelimit throttles HTTP requests with per-key token buckets.
//
// TokenBucket keeps one golang.org/x/time/rate limiter per key in memory and
// forgets buckets that stay idle. Keys come from a KeyFunc: ByIP, Global, or
// any combination built with Composite.
//
//	limiter, err := ratelimit.NewTokenBucket(10, 20)
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ByIP(), ratelimit.WithLogger(log)))
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset. Throttled requests get 429 with Retry-After, or whatever
// WithOnLimitReached renders. Limiter errors fail open.
package ratelimit
