// internal/catalog/fixtures_test.go
package catalog

import "github.com/haspco/safety-catalog/internal/models"

func product(id int64, distributor, category, sub, subSub string) models.Product {
	return models.Product{
		ID:             id,
		Name:           "product-" + string(rune('A'+id-1)),
		Distributor:    models.Label(distributor),
		Category:       models.Label(category),
		SubCategory:    models.Label(sub),
		SubSubCategory: models.Label(subSub),
	}
}

func sampleCatalog() []models.Product {
	return []models.Product{
		product(1, "Delta Plus", "Head Protection", "Safety Helmets", ""),
		product(2, "Delta Plus", "Head Protection", "Safety Helmets", ""),
		product(3, "3M", "Respirators", "3M Powered Air", "TR-300"),
		product(4, "3M", "Respirators", "3M Powered Air", "TR-600"),
		product(5, "3M", "Respirators", "Half Face Masks", ""),
		product(6, "Delta Plus", "Safety Boots", "", ""),
		product(7, "KOSMODISK", "", "", ""),
		product(8, "", "", "", ""),
		product(9, "delta plus", "safety boots", "Welding Boots", ""),
	}
}
