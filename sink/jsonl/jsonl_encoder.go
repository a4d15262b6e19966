// Package jsonl provides a TableEncoder which writes one JSON object per Row.
package jsonl

import (
	"bufio"
	"io"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/util"
)

// Encoder writes Tables as JSON lines. Object fields follow the column order of the Schema.
type Encoder struct{}

// CreateEncoder returns a new JSON lines Encoder
func CreateEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes every Row of table to w
func (e *Encoder) Encode(w io.Writer, table flowsome.Table) error {
	bw := bufio.NewWriter(w)
	schema := table.Schema()
	colNames := schema.ColumnNames()
	colTypes := schema.ColumnTypes()
	err := table.ForEachRow(func(row flowsome.Row) error {
		doc := []byte("{}")
		var err error
		for i, v := range row.Values() {
			doc, err = util.SetJSONField(doc, colNames[i], colTypes[i], v)
			if err != nil {
				return err
			}
		}
		if _, err := bw.Write(doc); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
