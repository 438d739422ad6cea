package ratelimiter

import (
	"context"
	"time"
)

// Store counts hits per key within a window.
type Store interface {
	// Hit increments key and returns the count in the current window and the
	// time left until the window resets. The first hit opens the window.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}
