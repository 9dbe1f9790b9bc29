// internal/catalog/search.go
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/haspco/safety-catalog/internal/models"
)

const (
	SortNewest = "newest"
	SortByName = "name"
)

// Filter narrows a product list the way the products page search bar does.
// Empty fields do not constrain. Query matches name, description or
// category.
type Filter struct {
	Query        string `form:"query"`
	Category     string `form:"category"`
	Manufacturer string `form:"manufacturer"`
	Color        string `form:"color"`
	Size         string `form:"size"`
	Sort         string `form:"sort" binding:"omitempty,oneof=newest name"`
}

func (f Filter) Apply(products []models.Product) []models.Product {
	query := ""
	if q := strings.TrimSpace(f.Query); q != "" {
		query = cases.Fold().String(q)
	}
	folder := cases.Fold()

	out := make([]models.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if query != "" && !matchesQuery(folder, p, query) {
			continue
		}
		if f.Category != "" && !SameLabel(string(p.Category), f.Category) {
			continue
		}
		if f.Manufacturer != "" && !SameLabel(string(p.Distributor), f.Manufacturer) {
			continue
		}
		if f.Color != "" && !containsLabel(p.Colors, f.Color) {
			continue
		}
		if f.Size != "" && !containsLabel(p.Sizes, f.Size) {
			continue
		}
		out = append(out, *p)
	}

	if f.Sort == SortByName {
		sortByName(out)
	}
	return out
}

func matchesQuery(folder cases.Caser, p *models.Product, query string) bool {
	for _, field := range []string{p.Name, p.Description, string(p.Category)} {
		if field != "" && strings.Contains(folder.String(field), query) {
			return true
		}
	}
	return false
}

// sortByName orders products by name with English collation. Products keep
// their input order otherwise, which is newest first.
func sortByName(products []models.Product) {
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(products, func(i, j int) bool {
		return col.CompareString(products[i].Name, products[j].Name) < 0
	})
}

func containsLabel(values []string, want string) bool {
	for _, v := range values {
		if SameLabel(v, want) {
			return true
		}
	}
	return false
}

// Featured picks the first product of every category, in input order.
// Products without a category are not featured.
func Featured(products []models.Product) []models.Product {
	seen := make(map[string]struct{})
	var out []models.Product
	for i := range products {
		key := Key(string(products[i].Category))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, products[i])
	}
	return out
}

// FindByID returns the first product with the given id.
func FindByID(products []models.Product, id int64) (*models.Product, bool) {
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, true
		}
	}
	return nil, false
}

// CountByManufacturer counts products whose distributor names manufacturer.
func CountByManufacturer(products []models.Product, manufacturer string) int {
	n := 0
	for i := range products {
		if SameLabel(string(products[i].Distributor), manufacturer) {
			n++
		}
	}
	return n
}
