package session

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/redis/go-redis/v9"
	"time"
)

const cacheKeyPrefix = "session:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, token string) (*Identity, error) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var identity Identity
	if err = json.Unmarshal(raw, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *redisCache) Set(ctx context.Context, token string, identity *Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+token, raw, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, cacheKeyPrefix+token).Err()
}
