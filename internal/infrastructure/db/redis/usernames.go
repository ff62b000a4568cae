package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const usernameTTL = 15 * time.Minute

// UsernameCache caches the user-id → username resolution used when the
// public feed excludes the caller's own posts. It is strictly best-effort:
// a miss or a Redis failure just means the feed skips the exclusion.
type UsernameCache struct {
	client *redis.Client
}

// NewUsernameCache creates a UsernameCache wrapping the given Redis client.
func NewUsernameCache(client *redis.Client) *UsernameCache {
	return &UsernameCache{client: client}
}

// Lookup returns the cached username for userID, or "" on a miss.
func (c *UsernameCache) Lookup(ctx context.Context, userID string) (string, error) {
	name, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("username lookup: %w", err)
	}
	return name, nil
}

// Store records the resolution (expires after usernameTTL).
func (c *UsernameCache) Store(ctx context.Context, userID, username string) error {
	return c.client.Set(ctx, c.key(userID), username, usernameTTL).Err()
}

func (c *UsernameCache) key(userID string) string {
	return fmt.Sprintf("username:%s", userID)
}
