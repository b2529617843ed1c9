package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/providers"
	redisclient "github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/redis"
	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

// tagKeyPrefix namespaces the per-tag lookup sets.
const tagKeyPrefix = "pricelist:tag:"

// RedisAdapter implements the CacheProvider interface using Redis
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{
		client: client,
	}
}

// Exists checks if a key exists in cache
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	result, err := a.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence in cache: %w", err)
	}
	return result > 0, nil
}

// Get retrieves a value from cache
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewNotFoundError("key not found: " + key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}
	return result, nil
}

// Put stores a value without expiration and registers the key under each
// lookup tag. Summaries are content-addressed so keys never go stale.
func (a *RedisAdapter) Put(ctx context.Context, key string, value []byte, tags []string) error {
	if err := a.client.Client().Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if err := a.client.Client().SAdd(ctx, tagKeyPrefix+tag, key).Err(); err != nil {
			return fmt.Errorf("failed to tag cache key: %w", err)
		}
	}
	return nil
}

// KeysByTag returns every cached key registered under a tag.
func (a *RedisAdapter) KeysByTag(ctx context.Context, tag string) ([]string, error) {
	keys, err := a.client.Client().SMembers(ctx, tagKeyPrefix+tag).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys by tag: %w", err)
	}
	return keys, nil
}
