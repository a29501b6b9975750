package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	redisclient "github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/redis"
)

const (
	// namespace keeps CareGroup keys apart from other users of the same Redis database
	namespace = "caregroup:"
	scanBatch = 100
)

// RedisAdapter implements the CacheProvider interface using Redis
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{client: client}
}

func (a *RedisAdapter) rdb() *redis.Client { return a.client.Client() }

// Get returns providers.ErrCacheMiss when key is absent or expired
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := a.rdb().Get(ctx, namespace+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, providers.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key for ttl
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := a.rdb().Set(ctx, namespace+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys; missing keys are ignored
func (a *RedisAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = namespace + k
	}
	return a.unlink(ctx, full)
}

// DeletePrefix removes every key starting with prefix, scanning in batches
// so a large cache never blocks the server
func (a *RedisAdapter) DeletePrefix(ctx context.Context, prefix string) error {
	iter := a.rdb().Scan(ctx, 0, namespace+prefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) < scanBatch {
			continue
		}
		if err := a.unlink(ctx, batch); err != nil {
			return err
		}
		batch = batch[:0]
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", prefix, err)
	}
	if len(batch) == 0 {
		return nil
	}
	return a.unlink(ctx, batch)
}

// unlink removes already namespaced keys
func (a *RedisAdapter) unlink(ctx context.Context, keys []string) error {
	if err := a.rdb().Unlink(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
