// internal/services/manufacturer_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/haspco/safety-catalog/internal/catalog"
	"github.com/haspco/safety-catalog/internal/models"
)

var ErrManufacturerNotFound = errors.New("manufacturer not found")

type ManufacturerService struct {
	source *CatalogSource
}

func NewManufacturerService(source *CatalogSource) *ManufacturerService {
	return &ManufacturerService{source: source}
}

func (s *ManufacturerService) List(ctx context.Context) ([]models.Manufacturer, error) {
	if !s.source.UsesDatabase() {
		manufacturers := s.source.Manufacturers()
		if manufacturers == nil {
			manufacturers = []models.Manufacturer{}
		}
		return manufacturers, nil
	}

	read, err := s.source.read(ctx, "SELECT * FROM manufacturers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load manufacturers: %w", err)
	}
	return decodeRows[models.Manufacturer](read.Rows)
}

// Get finds a manufacturer by name, ignoring case, and counts the products
// it distributes.
func (s *ManufacturerService) Get(ctx context.Context, name string) (*models.ManufacturerDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrManufacturerNotFound
	}

	if s.source.UsesDatabase() {
		return s.getFromDatabase(ctx, name)
	}

	for _, m := range s.source.Manufacturers() {
		if !catalog.SameLabel(m.Name, name) {
			continue
		}
		products, _, err := s.source.Products(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		return &models.ManufacturerDetail{
			Manufacturer: m,
			ProductCount: catalog.CountByManufacturer(products, m.Name),
		}, nil
	}
	return nil, ErrManufacturerNotFound
}

func (s *ManufacturerService) getFromDatabase(ctx context.Context, name string) (*models.ManufacturerDetail, error) {
	read, err := s.source.read(ctx, "SELECT * FROM manufacturers WHERE LOWER(name) = LOWER(?) LIMIT 1", name)
	if err != nil {
		return nil, fmt.Errorf("failed to load manufacturer: %w", err)
	}
	manufacturers, err := decodeRows[models.Manufacturer](read.Rows)
	if err != nil {
		return nil, err
	}
	if len(manufacturers) == 0 {
		return nil, ErrManufacturerNotFound
	}

	counted, err := s.source.read(ctx, "SELECT COUNT(*) AS count FROM products WHERE LOWER(distributor) = LOWER(?)", manufacturers[0].Name)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	count := 0
	if len(counted.Rows) > 0 {
		count = cast.ToInt(counted.Rows[0]["count"])
	}

	return &models.ManufacturerDetail{Manufacturer: manufacturers[0], ProductCount: count}, nil
}
