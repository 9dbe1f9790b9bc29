// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Label is a classification value (manufacturer, category, sub-category).
// Anything that is not a JSON string decodes to the empty label, which the
// catalog treats as absent.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = ""
		return nil
	}
	*l = Label(s)
	return nil
}

func (l Label) String() string {
	return string(l)
}

// AttributeMap holds the free-form spec table of a product. Values are strings
// or lists of strings; numbers from hand-written data are kept as-is.
type AttributeMap map[string]interface{}

// NotesKey holds additional info that arrived as a list or a bare value
// instead of a key/value table.
const NotesKey = "Notes"

func (a *AttributeMap) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*a = nil
	case map[string]interface{}:
		*a = AttributeMap(v)
	case []interface{}:
		if len(v) == 0 {
			*a = AttributeMap{}
			return nil
		}
		*a = AttributeMap{NotesKey: v}
	default:
		*a = AttributeMap{NotesKey: v}
	}
	return nil
}

func (a AttributeMap) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AttributeMap) Scan(value interface{}) error {
	return scanJSONText(value, a)
}

// StringList is stored as JSON text in a single column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	return scanJSONText(value, s)
}

// VariantList is stored as JSON text in a single column.
type VariantList []ColorVariant

func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]ColorVariant(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *VariantList) Scan(value interface{}) error {
	return scanJSONText(value, v)
}

func scanJSONText(value interface{}, dest interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
