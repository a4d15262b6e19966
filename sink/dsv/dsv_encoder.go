// Package dsv provides a TableEncoder which writes delimiter-separated values.
package dsv

import (
	"encoding/csv"
	"io"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/util"
)

// EncoderConf configures a DSV Encoder
type EncoderConf struct {
	Delimiter rune   // The delimiter separating columns. Defaults to ,
	NoHeader  bool   // If true, the header line of column names is omitted
	NilValue  string // The string written for nil values. Defaults to the empty string.
	UseCRLF   bool   // If true, lines end in \r\n
}

// Encoder writes Tables as delimiter-separated values. Nested values are written as JSON.
type Encoder struct {
	conf *EncoderConf
}

// CreateEncoder returns a new DSV Encoder
func CreateEncoder(conf *EncoderConf) *Encoder {
	if conf == nil {
		conf = &EncoderConf{}
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Encoder{conf: conf}
}

// Encode writes every Row of table to w
func (e *Encoder) Encode(w io.Writer, table flowsome.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = e.conf.Delimiter
	writer.UseCRLF = e.conf.UseCRLF
	schema := table.Schema()
	if !e.conf.NoHeader {
		if err := writer.Write(schema.ColumnNames()); err != nil {
			return err
		}
	}
	colTypes := schema.ColumnTypes()
	record := make([]string, len(colTypes))
	err := table.ForEachRow(func(row flowsome.Row) error {
		for i, v := range row.Values() {
			field, err := e.formatValue(colTypes[i], v)
			if err != nil {
				return err
			}
			record[i] = field
		}
		return writer.Write(record)
	})
	if err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func (e *Encoder) formatValue(colType flowsome.ColumnType, v interface{}) (string, error) {
	if v == nil {
		return e.conf.NilValue, nil
	}
	switch colType.(type) {
	case *flowsome.ListColumnType, *flowsome.StructColumnType:
		return util.ValueToJSON(colType, v)
	case *flowsome.StringColumnType:
		return v.(string), nil
	case *flowsome.BytesColumnType:
		return string(v.([]byte)), nil
	}
	return colType.ToString(v), nil
}
