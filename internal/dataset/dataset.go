// internal/dataset/dataset.go
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/haspco/safety-catalog/internal/models"
)

//go:embed data/*.json data/*.yaml
var files embed.FS

// Dataset is the catalog content bundled with the binary.
type Dataset struct {
	Products      []models.Product
	Mock          []models.Product
	Manufacturers []models.Manufacturer
	Categories    []models.Category
}

func Load() (*Dataset, error) {
	d := &Dataset{}

	if err := decodeJSON("data/products.json", &d.Products); err != nil {
		return nil, err
	}
	if err := decodeJSON("data/products_mock.json", &d.Mock); err != nil {
		return nil, err
	}
	if err := decodeYAML("data/manufacturers.yaml", &d.Manufacturers); err != nil {
		return nil, err
	}
	if err := decodeYAML("data/categories.yaml", &d.Categories); err != nil {
		return nil, err
	}

	return d, nil
}

// MustLoad is Load for callers that cannot run without the bundled data.
func MustLoad() *Dataset {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func decodeJSON(name string, dest interface{}) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func decodeYAML(name string, dest interface{}) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
