// Package redis holds read-through caches in front of the rarely written
// configuration stores: dimension policies and control-account mappings.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/middleware"
	goredislib "github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger:"

// missMarker is cached for lookups the store answered with not found.
const missMarker = "-"

type cache struct {
	client goredislib.UniversalClient
	ttl    time.Duration
}

// get reports (hit, miss-marker). Redis failures count as a plain miss.
func (c cache) get(ctx context.Context, key string, dst any) (bool, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, goredislib.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false, false
	}
	if raw == missMarker {
		return true, true
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Dropping undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		c.del(ctx, key)
		return false, false
	}
	return true, false
}

func (c cache) set(ctx context.Context, key string, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.setRaw(ctx, key, body)
}

func (c cache) setRaw(ctx context.Context, key string, value any) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (c cache) del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Cache invalidation failed", slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}
