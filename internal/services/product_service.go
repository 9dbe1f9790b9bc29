// internal/services/product_service.go
package services

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/haspco/safety-catalog/internal/catalog"
	"github.com/haspco/safety-catalog/internal/database"
	"github.com/haspco/safety-catalog/internal/models"
	"github.com/haspco/safety-catalog/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

// FieldError reports a body field that could not be decoded.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CreateProductRequest mirrors the product fields. List and map fields may
// be sent as JSON values or as JSON-encoded strings.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,max=255,label"`
	Category       string          `json:"category" validate:"max=150,label"`
	SubCategory    string          `json:"subCategory" validate:"max=150,label"`
	SubSubCategory string          `json:"subSubCategory" validate:"max=150,label"`
	Distributor    string          `json:"distributor" validate:"max=150,label"`
	Image          string          `json:"image" validate:"max=1024"`
	Description    string          `json:"description"`
	Brief          string          `json:"brief"`
	Colors         json.RawMessage `json:"colors,omitempty"`
	Sizes          json.RawMessage `json:"sizes,omitempty"`
	ColorVariants  json.RawMessage `json:"colorVariants,omitempty"`
	Gallery        json.RawMessage `json:"gallery,omitempty"`
	AdditionalInfo json.RawMessage `json:"additionalInfo,omitempty"`
}

const insertProductSQL = `INSERT INTO products
	(name, category, sub_category, sub_sub_category, distributor, image, description, brief,
	 colors, sizes, color_variants, gallery, additional_info, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	RETURNING id`

type ProductService struct {
	source *CatalogSource
}

func NewProductService(source *CatalogSource) *ProductService {
	return &ProductService{source: source}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, Source, error) {
	products, source, err := s.source.Products(ctx)
	if err != nil {
		return nil, source, fmt.Errorf("failed to load products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, source, nil
}

// Get looks a product up by its id. Ids that are not integers are not found.
func (s *ProductService) Get(ctx context.Context, productID string) (*models.Product, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(productID), 10, 64)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if s.source.UsesDatabase() {
		products, err := s.source.queryProducts(ctx, "SELECT * FROM products WHERE id = ?", id)
		if err != nil {
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		if len(products) == 0 {
			return nil, ErrProductNotFound
		}
		return &products[0], nil
	}

	products, _, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	product, ok := catalog.FindByID(products, id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create inserts a product and returns its id. Without a database the
// insert is accepted and the id is 0.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (int64, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	var (
		colors         models.StringList
		sizes          models.StringList
		colorVariants  models.VariantList
		gallery        models.StringList
		additionalInfo models.AttributeMap
	)
	fields := []struct {
		name  string
		raw   json.RawMessage
		value interface{}
	}{
		{"colors", req.Colors, &colors},
		{"sizes", req.Sizes, &sizes},
		{"colorVariants", req.ColorVariants, &colorVariants},
		{"gallery", req.Gallery, &gallery},
		{"additionalInfo", req.AdditionalInfo, &additionalInfo},
	}
	for _, f := range fields {
		if err := decodeFlexibleJSON(f.raw, f.value); err != nil {
			return 0, &FieldError{Field: f.name, Err: err}
		}
	}

	args := []interface{}{
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Category),
		strings.TrimSpace(req.SubCategory),
		strings.TrimSpace(req.SubSubCategory),
		strings.TrimSpace(req.Distributor),
		req.Image,
		req.Description,
		req.Brief,
	}
	for _, v := range []driver.Valuer{colors, sizes, colorVariants, gallery, additionalInfo} {
		text, err := columnText(v)
		if err != nil {
			return 0, err
		}
		args = append(args, text)
	}

	result, err := s.source.store.Execute(ctx, insertProductSQL, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	s.source.Invalidate(ctx)

	if write, ok := result.(database.WriteResult); ok {
		return write.InsertID, nil
	}
	return 0, nil
}

// Search filters the current product list and returns one page of it.
func (s *ProductService) Search(ctx context.Context, filter catalog.Filter, params utils.PaginationParams) (utils.PaginationResult, error) {
	products, _, err := s.source.Products(ctx)
	if err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to load products: %w", err)
	}

	matched := filter.Apply(products)
	start, end := params.Bounds(len(matched))
	return utils.CreatePaginationResult(matched[start:end], int64(len(matched)), params), nil
}

func (s *ProductService) Featured(ctx context.Context) ([]models.Product, error) {
	products, _, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return catalog.Featured(products), nil
}

// decodeFlexibleJSON accepts a JSON value or a string holding one. Absent,
// null and empty values leave dest untouched.
func decodeFlexibleJSON(raw json.RawMessage, dest interface{}) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if inner == "" || inner == "null" {
			return nil
		}
		raw = []byte(inner)
	}

	return json.Unmarshal(raw, dest)
}

func columnText(v driver.Valuer) (string, error) {
	value, err := v.Value()
	if err != nil {
		return "", fmt.Errorf("failed to encode column: %w", err)
	}
	text, _ := value.(string)
	return text, nil
}
