package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// setNX is the subset of redis.Cmdable used by Ledger.
type setNX interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// Ledger records consumed token ids so a verified token can be acted upon
// only once. Entries expire together with the token they guard; after that
// the signature check alone rejects the token.
type Ledger struct {
	db     setNX
	prefix string
}

// NewLedger creates a Ledger on top of client. An empty prefix defaults to "used_token:".
func NewLedger(client setNX, prefix string) *Ledger {
	if prefix == "" {
		prefix = "used_token:"
	}
	return &Ledger{db: client, prefix: prefix}
}

// Consume marks id as used for ttl. It reports false if id was already used.
// Non-positive ttl values are raised to one second so the key always expires.
func (l *Ledger) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if id == "" {
		return false, ErrEmptyTokenID
	}
	if ttl < time.Second {
		ttl = time.Second
	}

	ok, err := l.db.SetNX(ctx, l.prefix+id, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, errors.Join(ErrLedgerUnavailable, err)
	}
	return ok, nil
}
