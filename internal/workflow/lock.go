package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLocker implements Locker with SETNX and a TTL so a crashed worker
// cannot hold a campaign forever.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

func lockKey(id uuid.UUID) string {
	return "campaign:run:" + id.String()
}

func (l *RedisLocker) Acquire(ctx context.Context, id uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, lockKey(id), "1", l.ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, id uuid.UUID) error {
	return l.client.Del(ctx, lockKey(id)).Err()
}
