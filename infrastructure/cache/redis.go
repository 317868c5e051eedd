package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vfg2006/sales-quest-api/internal/domain"
)

type RedisCache struct {
	rdb *goredis.Client
	key string
}

// NewRedisCache conecta e valida o servidor com um ping
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisCacheWithClient(rdb), nil
}

func NewRedisCacheWithClient(rdb *goredis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, key: Key}
}

func (c *RedisCache) Load(ctx context.Context) (*domain.CachedDataset, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cache no redis: %w", err)
	}

	var dataset domain.CachedDataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	return &dataset, nil
}

func (c *RedisCache) Save(ctx context.Context, dataset *domain.CachedDataset) error {
	raw, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("erro ao serializar cache: %w", err)
	}

	if err := c.rdb.Set(ctx, c.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("erro ao gravar cache no redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
