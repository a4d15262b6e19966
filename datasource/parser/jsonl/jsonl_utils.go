package jsonl

import (
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/tidwall/gjson"
)

// ParseJSONRow extracts Row values from a line of JSON, locating each column by using its name as a gjson path
func ParseJSONRow(names []string, colTypes []flowsome.ColumnType, rowString string) ([]interface{}, error) {
	if !gjson.Valid(rowString) {
		return nil, fmt.Errorf("Invalid JSON: %s", rowString)
	}
	results := gjson.GetMany(rowString, names...)
	values := make([]interface{}, len(names))
	for i, res := range results {
		v, err := parseValue(res, colTypes[i])
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as %s. Was: %s: %w", names[i], colTypes[i].Name(), res.Raw, err)
		}
		values[i] = v
	}
	return values, nil
}

// parseValue converts a gjson Result into a value of the given ColumnType, or nil
func parseValue(res gjson.Result, colType flowsome.ColumnType) (interface{}, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	switch colType.(type) {
	case *flowsome.Int64ColumnType:
		if res.Type == gjson.Number {
			// avoid a round trip through float64, which loses precision for large integers
			return colType.Coerce(res.Raw)
		}
	case *flowsome.DecimalColumnType:
		if res.Type == gjson.Number {
			return colType.Coerce(res.Raw)
		}
	case *flowsome.StringColumnType:
		return res.String(), nil
	}
	return colType.Coerce(res.Value())
}
