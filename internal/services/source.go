// internal/services/source.go
package services

import (
	"context"
	"fmt"

	"github.com/haspco/safety-catalog/internal/cache"
	"github.com/haspco/safety-catalog/internal/database"
	"github.com/haspco/safety-catalog/internal/dataset"
	"github.com/haspco/safety-catalog/internal/models"
)

// DataStore is the part of database.Store the services rely on.
type DataStore interface {
	Execute(ctx context.Context, statement string, args ...interface{}) (database.Result, error)
	IsFallback() bool
}

// Source names where a product list came from.
type Source string

const (
	SourceMock     Source = "mock"
	SourceDatabase Source = "database"
	SourceStatic   Source = "static"
)

// CatalogSource picks the product list for a request: the mock set when
// forced, the database once connected, the bundled data otherwise, and the
// mock set when nothing is bundled.
type CatalogSource struct {
	store   DataStore
	data    *dataset.Dataset
	cache   cache.ProductCache
	useMock bool
}

func NewCatalogSource(store DataStore, data *dataset.Dataset, productCache cache.ProductCache, useMock bool) *CatalogSource {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	if data == nil {
		data = &dataset.Dataset{}
	}
	return &CatalogSource{
		store:   store,
		data:    data,
		cache:   productCache,
		useMock: useMock,
	}
}

// UsesDatabase reports whether lookups should go to the database.
func (s *CatalogSource) UsesDatabase() bool {
	return !s.useMock && !s.store.IsFallback()
}

func (s *CatalogSource) Products(ctx context.Context) ([]models.Product, Source, error) {
	if s.useMock {
		return s.data.Mock, SourceMock, nil
	}

	if !s.store.IsFallback() {
		if products, ok := s.cache.GetProducts(ctx); ok {
			return products, SourceDatabase, nil
		}
		products, err := s.queryProducts(ctx, "SELECT * FROM products ORDER BY id")
		if err != nil {
			return nil, SourceDatabase, err
		}
		s.cache.SetProducts(ctx, products)
		return products, SourceDatabase, nil
	}

	if len(s.data.Products) > 0 {
		return s.data.Products, SourceStatic, nil
	}
	return s.data.Mock, SourceMock, nil
}

// Manufacturers returns the bundled manufacturer list.
func (s *CatalogSource) Manufacturers() []models.Manufacturer {
	return s.data.Manufacturers
}

func (s *CatalogSource) Categories() []models.Category {
	return s.data.Categories
}

func (s *CatalogSource) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func (s *CatalogSource) queryProducts(ctx context.Context, statement string, args ...interface{}) ([]models.Product, error) {
	read, err := s.read(ctx, statement, args...)
	if err != nil {
		return nil, err
	}
	return decodeRows[models.Product](read.Rows)
}

func (s *CatalogSource) read(ctx context.Context, statement string, args ...interface{}) (database.ReadResult, error) {
	result, err := s.store.Execute(ctx, statement, args...)
	if err != nil {
		return database.ReadResult{}, err
	}
	read, ok := result.(database.ReadResult)
	if !ok {
		return database.ReadResult{}, fmt.Errorf("expected rows, got %T", result)
	}
	return read, nil
}
