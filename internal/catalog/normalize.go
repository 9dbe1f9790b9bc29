// internal/catalog/normalize.go
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/haspco/safety-catalog/internal/models"
)

// Key folds a classification value into the form used for grouping and
// matching. Every comparison in the catalog goes through Key, so
// "Delta Plus", "delta plus" and " DELTA PLUS " name the same manufacturer.
// The empty key means absent.
func Key(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	// cases.Caser keeps state between calls and cannot be shared.
	return cases.Fold().String(trimmed)
}

// SameLabel reports whether two classification values name the same thing.
func SameLabel(a, b string) bool {
	return Key(a) == Key(b)
}

// levelValue returns the classification value of p at the given level of
// the manufacturer-first hierarchy.
func levelValue(p *models.Product, level Level) string {
	switch level {
	case LevelManufacturer:
		return strings.TrimSpace(string(p.Distributor))
	case LevelCategory:
		return strings.TrimSpace(string(p.Category))
	case LevelSubCategory:
		return strings.TrimSpace(string(p.SubCategory))
	case LevelSubSubCategory:
		return strings.TrimSpace(string(p.SubSubCategory))
	default:
		return ""
	}
}
