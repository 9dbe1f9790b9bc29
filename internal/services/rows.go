// internal/services/rows.go
package services

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/haspco/safety-catalog/internal/models"
)

// Types stored as JSON text columns.
var jsonColumnTypes = map[reflect.Type]bool{
	reflect.TypeOf(models.StringList{}):   true,
	reflect.TypeOf(models.VariantList{}):  true,
	reflect.TypeOf(models.AttributeMap{}): true,
}

func jsonColumnHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || !jsonColumnTypes[to] {
		return data, nil
	}

	target := reflect.New(to)
	text := strings.TrimSpace(reflect.ValueOf(data).String())
	if text == "" || text == "null" {
		return target.Elem().Interface(), nil
	}
	if err := json.Unmarshal([]byte(text), target.Interface()); err != nil {
		return nil, fmt.Errorf("invalid JSON column for %s: %w", to, err)
	}
	return target.Elem().Interface(), nil
}

func decodeRow(row map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       jsonColumnHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(row)
}

func decodeRows[T any](rows []map[string]interface{}) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var item T
		if err := decodeRow(row, &item); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}
