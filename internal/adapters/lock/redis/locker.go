package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

// Locker is a redsync-backed portssvc.Locker.
type Locker struct {
	rs     *redsync.Redsync
	expiry time.Duration
	tries  int
}

// NewLocker creates a Locker whose locks expire after expiry unless released.
func NewLocker(client goredislib.UniversalClient, expiry time.Duration) *Locker {
	return &Locker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
		tries:  1,
	}
}

var _ portssvc.Locker = (*Locker)(nil)

// WithLock runs fn while holding key. A lock held elsewhere yields apperrors.ErrConflict.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: lock key must not be blank", apperrors.ErrValidation)
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(l.tries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		if isContention(err) {
			return fmt.Errorf("%w: %s is held by another run", apperrors.ErrConflict, key)
		}
		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}

	defer func() {
		if ok, err := mutex.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			logger.Error("Failed to release lock", slog.String("lock_key", key), slog.Any("error", err))
		}
	}()

	return fn(ctx)
}

// RevaluationLockKey names the lock serializing revaluation runs of one period.
func RevaluationLockKey(ledgerID, periodID string) string {
	return fmt.Sprintf("ledger:%s:period:%s:revaluation", ledgerID, periodID)
}

// isContention separates "someone else holds it" from transport failures.
func isContention(err error) bool {
	msg := err.Error()
	return errors.Is(err, redsync.ErrFailed) ||
		strings.Contains(msg, "lock already taken") ||
		strings.Contains(msg, "failed to acquire lock")
}
