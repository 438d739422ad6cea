package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySetNX emulates SET NX with expiry.
type memorySetNX struct {
	mu   sync.Mutex
	keys map[string]time.Duration
	err  error
}

func (m *memorySetNX) SetNX(_ context.Context, key string, _ any, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	if _, ok := m.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestLedger_Consume(t *testing.T) {
	t.Parallel()

	store := &memorySetNX{keys: map[string]time.Duration{}}
	ledger := NewLedger(store, "")
	ctx := context.Background()

	first, err := ledger.Consume(ctx, "jti-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := ledger.Consume(ctx, "jti-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	other, err := ledger.Consume(ctx, "jti-2", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, other)

	assert.Equal(t, time.Hour, store.keys["used_token:jti-1"])
	assert.Equal(t, time.Second, store.keys["used_token:jti-2"], "ttl is raised to one second")
}

func TestLedger_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty id", func(t *testing.T) {
		ledger := NewLedger(&memorySetNX{keys: map[string]time.Duration{}}, "p:")
		ok, err := ledger.Consume(context.Background(), "", time.Hour)
		require.ErrorIs(t, err, ErrEmptyTokenID)
		assert.False(t, ok)
	})

	t.Run("backend failure", func(t *testing.T) {
		ledger := NewLedger(&memorySetNX{err: errors.New("connection refused")}, "p:")
		ok, err := ledger.Consume(context.Background(), "jti", time.Hour)
		require.ErrorIs(t, err, ErrLedgerUnavailable)
		assert.False(t, ok)
	})
}

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), Config{})
	require.ErrorIs(t, err, ErrEmptyConnectionURL)

	_, err = Connect(context.Background(), Config{ConnectionURL: "mysql://nope"})
	require.ErrorIs(t, err, ErrFailedToParseRedisConnString)
}
