// Package json parses structured object payloads into canonical catalog rows.
package json

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cncmarket/catalog-service/internal/types"
	"github.com/rs/zerolog/log"
)

// Parse parses JSON content into canonical rows. The payload must be either
// a top-level array of product objects or an object exposing the list under
// a "products"/"Products" key; anything else parses to zero rows. Field
// names follow the canonical row contract and are matched case-insensitively.
func Parse(content []byte) []types.CanonicalRow {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber() // keep numeric literals verbatim ("250.00" stays "250.00")

	var payload interface{}
	if err := decoder.Decode(&payload); err != nil {
		log.Debug().Err(err).Msg("Rejecting unparsable JSON payload")
		return nil
	}

	items := productList(payload)
	rows := make([]types.CanonicalRow, 0, len(items))
	for _, item := range items {
		object, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		fields := make(map[string]string, len(object))
		for key, value := range object {
			if s, ok := stringify(value); ok {
				fields[key] = s
			}
		}

		row, ok := types.RowFromFields(fields)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// productList unwraps the decoded payload into the product item slice
func productList(payload interface{}) []interface{} {
	switch v := payload.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		for key, value := range v {
			if !strings.EqualFold(key, "products") {
				continue
			}
			if items, ok := value.([]interface{}); ok {
				return items
			}
		}
	}
	return nil
}

// stringify renders a scalar JSON value into the row's string contract
func stringify(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		// nested objects/arrays have no place in the flat row shape
		return "", false
	}
}
