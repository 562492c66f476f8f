package cache

import (
	"github.com/feedloop/feedloop/internal/config"
	"github.com/redis/go-redis/v9"
)

// New builds a Redis client. Returns nil when no address is configured;
// callers fall back to in-process alternatives.
func New(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}
