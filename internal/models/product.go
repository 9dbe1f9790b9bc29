// internal/models/product.go
package models

import "time"

type ColorVariant struct {
	Name    string     `json:"name"`
	Gallery StringList `json:"gallery"`
}

// Product is the catalog entry served to clients. Only ID is guaranteed;
// every other field may be missing in the source data.
type Product struct {
	ID             int64        `json:"id" mapstructure:"id"`
	Name           string       `json:"name,omitempty" mapstructure:"name"`
	Category       Label        `json:"category,omitempty" mapstructure:"category"`
	SubCategory    Label        `json:"subCategory,omitempty" mapstructure:"sub_category"`
	SubSubCategory Label        `json:"subSubCategory,omitempty" mapstructure:"sub_sub_category"`
	Distributor    Label        `json:"distributor,omitempty" mapstructure:"distributor"`
	Image          string       `json:"image,omitempty" mapstructure:"image"`
	Description    string       `json:"description,omitempty" mapstructure:"description"`
	Brief          string       `json:"brief,omitempty" mapstructure:"brief"`
	Colors         StringList   `json:"colors,omitempty" mapstructure:"colors"`
	Sizes          StringList   `json:"sizes,omitempty" mapstructure:"sizes"`
	ColorVariants  VariantList  `json:"colorVariants,omitempty" mapstructure:"color_variants"`
	Gallery        StringList   `json:"gallery,omitempty" mapstructure:"gallery"`
	AdditionalInfo AttributeMap `json:"additionalInfo,omitempty" mapstructure:"additional_info"`
}

// ProductRecord is the table layout used for migrations. List and map
// fields are JSON text columns.
type ProductRecord struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"size:255;not null"`
	Category       string `gorm:"size:150;index"`
	SubCategory    string `gorm:"column:sub_category;size:150"`
	SubSubCategory string `gorm:"column:sub_sub_category;size:150"`
	Distributor    string `gorm:"size:150;index"`
	Image          string `gorm:"size:1024"`
	Description    string `gorm:"type:text"`
	Brief          string `gorm:"type:text"`
	Colors         string `gorm:"type:text"`
	Sizes          string `gorm:"type:text"`
	ColorVariants  string `gorm:"column:color_variants;type:text"`
	Gallery        string `gorm:"type:text"`
	AdditionalInfo string `gorm:"column:additional_info;type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ProductRecord) TableName() string {
	return "products"
}
