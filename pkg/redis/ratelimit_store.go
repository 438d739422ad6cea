package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// counter is the subset of redis.Cmdable used by RateLimitStore.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	PExpire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimitStore keeps fixed window counters in Redis so every API instance
// shares the same limits.
type RateLimitStore struct {
	db counter
}

// NewRateLimitStore creates a RateLimitStore on top of client.
func NewRateLimitStore(client counter) *RateLimitStore {
	return &RateLimitStore{db: client}
}

// Hit increments key. The first hit sets the window expiry; a key found
// without expiry (a crash between INCR and PEXPIRE) gets one as well.
func (s *RateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	n, err := s.db.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, errors.Join(ErrRateLimitUnavailable, err)
	}

	if n == 1 {
		if err := s.db.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, errors.Join(ErrRateLimitUnavailable, err)
		}
		return n, window, nil
	}

	ttl, err := s.db.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, errors.Join(ErrRateLimitUnavailable, err)
	}
	if ttl < 0 {
		if err := s.db.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, errors.Join(ErrRateLimitUnavailable, err)
		}
		ttl = window
	}
	return n, ttl, nil
}
