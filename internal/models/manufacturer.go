// internal/models/manufacturer.go
package models

type Manufacturer struct {
	ID    int64  `json:"id,omitempty" yaml:"-" mapstructure:"id"`
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Logo  string `json:"logo,omitempty" yaml:"logo" mapstructure:"logo"`
	Brief string `json:"brief,omitempty" yaml:"brief" mapstructure:"brief"`
}

// ManufacturerDetail is a manufacturer together with the number of
// products that list it as their distributor.
type ManufacturerDetail struct {
	Manufacturer
	ProductCount int `json:"productCount"`
}

type ManufacturerRecord struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:150;not null;uniqueIndex"`
	Logo  string `gorm:"size:1024"`
	Brief string `gorm:"type:text"`
}

func (ManufacturerRecord) TableName() string {
	return "manufacturers"
}
