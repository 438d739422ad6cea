package ratelimiter

import "errors"

var (
	ErrInvalidConfig    = errors.New("ratelimiter: limit must be positive and window at least one second")
	ErrEmptyKey         = errors.New("ratelimiter: empty key")
	ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")
)
