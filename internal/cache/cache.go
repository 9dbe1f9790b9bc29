// internal/cache/cache.go
package cache

import (
	"context"

	"github.com/haspco/safety-catalog/internal/models"
)

// ProductCache holds the database-backed product list between requests.
// Misses and errors are indistinguishable to callers.
type ProductCache interface {
	GetProducts(ctx context.Context) ([]models.Product, bool)
	SetProducts(ctx context.Context, products []models.Product)
	Invalidate(ctx context.Context)
	Close() error
}

// Noop never stores anything.
type Noop struct{}

func (Noop) GetProducts(context.Context) ([]models.Product, bool) { return nil, false }
func (Noop) SetProducts(context.Context, []models.Product)        {}
func (Noop) Invalidate(context.Context)                           {}
func (Noop) Close() error                                         { return nil }
