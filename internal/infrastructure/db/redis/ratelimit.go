package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts requests per key in fixed windows using
// INCR/EXPIRE.
// Key format: rl:<window_seconds>:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter allows up to limit requests per key within each window.
func NewFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, limit: int64(limit), window: window}
}

// Allow increments the counter for key and reports whether the request fits
// in the current window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.limit, nil
}

func (l *FixedWindowLimiter) key(key string) string {
	return "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + key
}
