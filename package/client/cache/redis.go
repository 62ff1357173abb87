package cache

import (
	"bookStore/internal/config"
	"bookStore/package/logger"
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

// Connect returns nil when no redis address is configured.
func Connect(cfg config.CacheConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Log.Info("Session cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	logger.Log.Info("Redis connected at ", cfg.Addr)
	return client, nil
}
