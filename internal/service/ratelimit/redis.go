package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"FlipCheck/internal/domain/repository"
)

// RedisLimiter allows one call per key per interval using SET NX with a TTL, so
// several bot replicas share the same limits.
type RedisLimiter struct {
	rdb      redis.UniversalClient
	prefix   string
	interval time.Duration
}

func NewRedis(rdb redis.UniversalClient, prefix string, interval time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "flipcheck:ratelimit"
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &RedisLimiter{rdb: rdb, prefix: prefix, interval: interval}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.interval <= 0 {
		return true, 0, nil
	}
	k := l.prefix + key
	ok, err := l.rdb.SetNX(ctx, k, 1, l.interval).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return true, 0, nil
	}
	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis pttl: %w", err)
	}
	if ttl < 0 {
		ttl = l.interval
	}
	return false, ttl, nil
}

var _ repository.RateLimiter = (*RedisLimiter)(nil)
