package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 500 * time.Millisecond

// Config captures the settings for the rate limiter's Redis connection.
type Config struct {
	Addr string
	DB   int
	// Timeout bounds dialing, every command and the startup ping. The
	// limiter runs on the request path, so it stays short; a slow Redis
	// makes the middleware fail open instead of stalling requests.
	Timeout time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) options() *redis.Options {
	t := c.timeout()
	return &redis.Options{
		Addr:         c.Addr,
		DB:           c.DB,
		DialTimeout:  t,
		ReadTimeout:  t,
		WriteTimeout: t,
	}
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
