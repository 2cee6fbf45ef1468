package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLocker grants a key to the first SETNX caller until the ttl expires.
type RedisLocker struct {
	client *redis.Client
	owner  string
}

func NewRedisLocker(client *redis.Client, owner string) *RedisLocker {
	return &RedisLocker{client: client, owner: owner}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, l.owner, ttl).Result()
}
