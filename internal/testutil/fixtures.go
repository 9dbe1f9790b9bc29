// internal/testutil/fixtures.go
package testutil

import (
	"github.com/haspco/safety-catalog/internal/dataset"
	"github.com/haspco/safety-catalog/internal/models"
)

// SmallDataset is a five-product catalog covering every classification
// depth.
func SmallDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Products: []models.Product{
			{ID: 1, Name: "Zircon Helmet", Distributor: "Delta Plus", Category: "Head Protection", SubCategory: "Safety Helmets",
				Colors: models.StringList{"white", "yellow"}, Sizes: models.StringList{"Adjustable"}},
			{ID: 2, Name: "Granite Helmet", Distributor: "Delta Plus", Category: "Head Protection", SubCategory: "Safety Helmets",
				Colors: models.StringList{"red"}},
			{ID: 3, Name: "TR-300 Kit", Distributor: "3M", Category: "Respirators", SubCategory: "3M Powered Air", SubSubCategory: "TR-300"},
			{ID: 4, Name: "Half Mask 6200", Distributor: "3M", Category: "Respirators", SubCategory: "Half Face Masks",
				Sizes: models.StringList{"M", "L"}},
			{ID: 5, Name: "Back Belt", Distributor: "KOSMODISK"},
		},
		Mock: []models.Product{
			{ID: 1001, Name: "Mock Safety Helmet", Distributor: "MockCo", Category: "Head Protection"},
		},
		Manufacturers: []models.Manufacturer{
			{Name: "Delta Plus", Logo: "/images/delta-plus.png"},
			{Name: "3M", Logo: "/images/3m.png"},
			{Name: "KOSMODISK"},
		},
		Categories: []models.Category{
			{Name: "Respirators", Icon: "fas fa-head-side-mask", Subcategories: []models.Subcategory{
				{Name: "Half Face Masks"},
				{Name: "3M Powered Air", SubSubcategories: []string{"TR-300"}},
			}},
		},
	}
}
