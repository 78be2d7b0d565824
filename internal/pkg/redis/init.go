package redis

import (
	"Orbit/internal/api/config"
	"Orbit/internal/pkg/logger"
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

var Rdb *redis.Client

// InitRedis connects the shared client and verifies it with PING
func InitRedis(cfg config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger())

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return err
	}

	Rdb = rdb
	return nil
}

// SetClient replaces the shared client, used by tests against miniredis
func SetClient(c *redis.Client) {
	Rdb = c
}

// Ping probes the shared client, used by the health endpoint
func Ping(ctx context.Context) error {
	return Rdb.Ping(ctx).Err()
}
