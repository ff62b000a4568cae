package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config holds the connection settings for the username cache.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the connectivity check. Zero means defaultTimeout.
	Timeout time.Duration
}

// Connect builds a Redis client and pings it once so a misconfigured address
// surfaces at startup rather than on the first cache lookup.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
