// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/haspco/safety-catalog/internal/config"
	"github.com/haspco/safety-catalog/internal/models"
)

const productsKey = "catalog:products:all"

// RedisCache stores the product list as one JSON value.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.CacheConfig) (*RedisCache, error) {
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.WithField("addr", cfg.RedisAddr).Info("connected to Redis")
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

// New returns a RedisCache when Redis is configured and reachable, and Noop
// otherwise.
func New(cfg config.CacheConfig) ProductCache {
	if cfg.RedisAddr == "" {
		return Noop{}
	}
	c, err := NewRedisCache(cfg)
	if err != nil {
		logrus.WithError(err).Warn("product cache disabled")
		return Noop{}
	}
	return c
}

func (c *RedisCache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	raw, err := c.client.Get(ctx, productsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("product cache read failed")
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		logrus.WithError(err).Warn("discarding malformed product cache entry")
		c.Invalidate(ctx)
		return nil, false
	}
	return products, true
}

func (c *RedisCache) SetProducts(ctx context.Context, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		logrus.WithError(err).Warn("failed to encode products for cache")
		return
	}
	if err := c.client.Set(ctx, productsKey, raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("product cache write failed")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, productsKey).Err(); err != nil {
		logrus.WithError(err).Warn("product cache invalidation failed")
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
