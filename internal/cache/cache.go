package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const turnKeyTTL = 24 * time.Hour

// IdempotencyGuard dedupes chat turns so a resubmitted turn does not execute
// its task batch twice. It is a dedup, not a lock: concurrent distinct turns
// for the same user remain unsynchronized.
type IdempotencyGuard interface {
	// Begin marks key as seen and returns false if it was already seen.
	Begin(ctx context.Context, key string) (bool, error)
}

// Noop allows every turn. Used when redis is not configured.
type Noop struct{}

func (Noop) Begin(ctx context.Context, key string) (bool, error) {
	return true, nil
}

// RedisGuard implements IdempotencyGuard with redis SETNX and a TTL.
type RedisGuard struct {
	client *redis.Client
}

// NewRedisGuard wraps an existing redis client.
func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Begin(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, 1, turnKeyTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
