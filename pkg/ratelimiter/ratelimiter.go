package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Limiter applies one Config to many keys.
type Limiter struct {
	store  Store
	config Config
	prefix string
	now    func() time.Time
}

// New creates a Limiter. prefix namespaces keys so several limiters can share
// a store.
func New(store Store, prefix string, config Config) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("ratelimiter: nil store")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, config: config, prefix: prefix, now: time.Now}, nil
}

// Allow records a hit for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrEmptyKey
	}

	count, resetIn, err := l.store.Hit(ctx, l.prefix+key, l.config.Window)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if resetIn <= 0 {
		resetIn = l.config.Window
	}

	return Result{
		Limit:     l.config.Limit,
		Remaining: l.config.Limit - int(count),
		ResetAt:   l.now().Add(resetIn),
	}, nil
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config { return l.config }
