// internal/models/category.go
package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is an entry of the hand-maintained navigation taxonomy.
type Category struct {
	Name          string        `json:"name" yaml:"name"`
	Icon          string        `json:"icon,omitempty" yaml:"icon"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`
}

// Subcategory is written either as a bare name or as a mapping with
// sub-subcategories, in YAML and in JSON.
type Subcategory struct {
	Name             string
	SubSubcategories []string
}

func (s *Subcategory) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&s.Name)
	case yaml.MappingNode:
		var raw struct {
			Name             string   `yaml:"name"`
			SubSubcategories []string `yaml:"subsubcategories"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.Name = raw.Name
		s.SubSubcategories = raw.SubSubcategories
		return nil
	default:
		return fmt.Errorf("line %d: subcategory must be a name or a mapping", node.Line)
	}
}

func (s Subcategory) MarshalJSON() ([]byte, error) {
	if len(s.SubSubcategories) == 0 {
		return json.Marshal(s.Name)
	}
	return json.Marshal(struct {
		Name             string   `json:"name"`
		SubSubcategories []string `json:"subsubcategories"`
	}{s.Name, s.SubSubcategories})
}
