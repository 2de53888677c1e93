package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares fixed-window counters between server instances.
// Each window gets its own key, incremented and given an expiry in a single
// MULTI/EXEC round trip.
type RedisLimiter struct {
	client    redis.Cmdable
	keyPrefix string
	rate      int
	length    time.Duration
	now       func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, keyPrefix string, rate int, length time.Duration) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "gophsocial:ratelimit:"
	}
	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
		rate:      rate,
		length:    length,
		now:       time.Now,
	}
}

func (r *RedisLimiter) key(key string) string {
	windowID := r.now().Truncate(r.length).UnixMilli()
	return fmt.Sprintf("%s%s:%d", r.keyPrefix, key, windowID)
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := r.key(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, r.length+time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}

	return incr.Val() <= int64(r.rate), nil
}

var _ Limiter = (*RedisLimiter)(nil)
