// Package ratelimit implements a fixed-window request quota backed by redis.
// Counters live in redis so the quota holds across instances and restarts.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// New creates a limiter allowing limit requests per key per window.
func New(rdb *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow increments the counter for key and reports whether the request is
// within quota. When denied, retryAfter is the time until the window resets.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := l.prefix + ":" + key

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}

	// The TTL starts with the first request of the window.
	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(l.limit) {
		retryAfter, err := l.rdb.TTL(ctx, redisKey).Result()
		if err != nil {
			retryAfter = l.window
		}
		return false, retryAfter, nil
	}

	return true, 0, nil
}
