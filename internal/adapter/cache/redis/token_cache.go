package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const tokenKeyPrefix = "token:"

// TokenCache stores verified identities under token fingerprints.
type TokenCache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewTokenCache(client *redis.Client, log *logger.Logger) *TokenCache {
	return &TokenCache{
		client: client,
		logger: log.Named("RedisTokenCache"),
	}
}

func (c *TokenCache) Get(ctx context.Context, key string) (*domain.Identity, bool, error) {
	val, err := c.client.Get(ctx, tokenKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", tokenKeyPrefix+key, err)
	}

	var id domain.Identity
	if err := json.Unmarshal(val, &id); err != nil {
		c.logger.Warn("Dropping undecodable token cache entry", zap.Error(err))
		_ = c.client.Del(ctx, tokenKeyPrefix+key).Err()
		return nil, false, nil
	}
	return &id, true, nil
}

func (c *TokenCache) Set(ctx context.Context, key string, id *domain.Identity, ttl time.Duration) error {
	payload, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := c.client.Set(ctx, tokenKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", tokenKeyPrefix+key, err)
	}
	c.logger.Debug("Cached verified token", zap.String("uid", id.UID), zap.Duration("ttl", ttl))
	return nil
}
