package ratelimiter

import "time"

// Config is a fixed window limit: at most Limit hits per Window.
type Config struct {
	Limit  int
	Window time.Duration
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return ErrInvalidConfig
	}
	if c.Window < time.Second {
		return ErrInvalidConfig
	}
	return nil
}

// Result describes the state of a key after a hit.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the hit fit in the window.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long until the window resets, or 0 when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}
