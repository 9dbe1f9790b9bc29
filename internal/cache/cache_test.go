// internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/haspco/safety-catalog/internal/config"
	"github.com/haspco/safety-catalog/internal/models"
)

func TestNoopNeverHits(t *testing.T) {
	var c ProductCache = Noop{}
	ctx := context.Background()

	c.SetProducts(ctx, []models.Product{{ID: 1}})
	products, ok := c.GetProducts(ctx)

	assert.False(t, ok)
	assert.Nil(t, products)
	assert.NoError(t, c.Close())
}

func TestNewWithoutAddressIsNoop(t *testing.T) {
	assert.IsType(t, Noop{}, New(config.CacheConfig{}))
}

func TestNewWithUnreachableRedisIsNoop(t *testing.T) {
	c := New(config.CacheConfig{RedisAddr: "127.0.0.1:1", TTL: time.Minute})
	assert.IsType(t, Noop{}, c)
}

func TestNewRedisCacheRequiresAddress(t *testing.T) {
	_, err := NewRedisCache(config.CacheConfig{})
	assert.Error(t, err)
}
