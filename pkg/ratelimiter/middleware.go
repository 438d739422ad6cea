package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/tendus-stephan/coreflowhr/pkg/httpjson"
	"github.com/tendus-stephan/coreflowhr/pkg/logger"
)

// KeyFunc extracts the rate limit key from a request. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// Middleware limits requests per key. Store failures are logged and the
// request is let through.
func Middleware(l *Limiter, key KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("ratelimiter"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), k)
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit check failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := res.RetryAfter(l.now())
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
				log.WarnContext(r.Context(), "rate limit exceeded",
					logger.Event("ratelimit.exceeded"),
					slog.String("path", r.URL.Path),
					slog.Duration("retry_after", retry.Round(time.Second)),
				)
				httpjson.Error(w, httpjson.ErrTooManyRequests.WithMessage("Too many requests. Try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
