// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"

	"github.com/haspco/safety-catalog/internal/catalog"
	"github.com/haspco/safety-catalog/internal/models"
)

// OptionsResult lists the choices at the next level of a selection.
type OptionsResult struct {
	Level   catalog.Level `json:"level"`
	Options []string      `json:"options"`
}

// CatalogService exposes the drill-down over the current product list.
type CatalogService struct {
	source *CatalogSource
}

func NewCatalogService(source *CatalogSource) *CatalogService {
	return &CatalogService{source: source}
}

func (s *CatalogService) Tree(ctx context.Context, by catalog.GroupBy) (*catalog.Index, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Build(products, by), nil
}

func (s *CatalogService) Options(ctx context.Context, sel catalog.Selection, by catalog.GroupBy) (*OptionsResult, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	options := catalog.OptionsAt(products, sel, by)
	if options == nil {
		options = []string{}
	}
	return &OptionsResult{Level: catalog.NextLevel(sel, by), Options: options}, nil
}

func (s *CatalogService) Browse(ctx context.Context, sel catalog.Selection, by catalog.GroupBy) (catalog.View, error) {
	products, err := s.products(ctx)
	if err != nil {
		return catalog.View{}, err
	}
	return catalog.NewNavigatorAt(products, by, sel).View(), nil
}

func (s *CatalogService) Categories() []models.Category {
	categories := s.source.Categories()
	if categories == nil {
		return []models.Category{}
	}
	return categories
}

func (s *CatalogService) products(ctx context.Context) ([]models.Product, error) {
	products, _, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}
