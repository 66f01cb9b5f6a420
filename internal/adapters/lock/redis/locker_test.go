package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/adapters/lock/redis"
	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/alicebob/miniredis/v2"
	goredislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) *redis.Locker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredislib.NewClient(&goredislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewLocker(client, time.Minute)
}

func TestLocker_RunsFunctionAndReleases(t *testing.T) {
	locker := newLocker(t)
	ctx := context.Background()
	key := redis.RevaluationLockKey("l1", "p1")

	calls := 0
	for i := 0; i < 2; i++ {
		err := locker.WithLock(ctx, key, func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestLocker_HeldLockIsAConflict(t *testing.T) {
	locker := newLocker(t)
	ctx := context.Background()
	key := redis.RevaluationLockKey("l1", "p1")

	err := locker.WithLock(ctx, key, func(ctx context.Context) error {
		inner := locker.WithLock(ctx, key, func(context.Context) error {
			t.Error("nested run must not execute")
			return nil
		})
		assert.ErrorIs(t, inner, apperrors.ErrConflict)
		return nil
	})
	require.NoError(t, err)
}

func TestLocker_PropagatesFunctionError(t *testing.T) {
	locker := newLocker(t)
	boom := errors.New("boom")

	err := locker.WithLock(context.Background(), "k", func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestRevaluationLockKey(t *testing.T) {
	assert.Equal(t, "ledger:l-1:period:p-9:revaluation", redis.RevaluationLockKey("l-1", "p-9"))
}
