// Package ratelimiter implements fixed window rate limiting.
//
// A Limiter counts hits per key in a Store. MemoryStore serves a single
// process; pkg/redis provides a shared store. Middleware answers 429 with
// Retry-After once a key exceeds its limit and sets X-RateLimit-* headers on
// every limited response.
//
//	limiter, err := ratelimiter.New(store, "email_change:", ratelimiter.Config{Limit: 5, Window: time.Hour})
//	r.With(ratelimiter.Middleware(limiter, byUser, log)).Post("/change", h.RequestChange)
package ratelimiter
