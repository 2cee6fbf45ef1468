package connection

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"salescrm/logs"
)

// RedisConnection returns nil when no address is configured.
func RedisConnection(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	logs.Log.Info("Redis connection successful")
	return rdb, nil
}
