package dsv

import (
	"fmt"

	"github.com/flowsome/flowsome"
)

// Parses a slice of strings into Row values, according to a schema
func scanRow(conf *ParserConf, names []string, colTypes []flowsome.ColumnType, rowStrings []string) ([]interface{}, error) {
	values := make([]interface{}, len(colTypes))
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			continue
		}
		// otherwise, parse type
		v, err := colTypes[i].Coerce(colVal)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as %s. Was: %#v: %w", names[i], colTypes[i].Name(), colVal, err)
		}
		values[i] = v
	}
	return values, nil
}
