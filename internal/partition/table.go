package partition

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/hashicorp/go-multierror"
)

// tableImpl is Flowsome's internal implementation of Table
type tableImpl struct {
	id     string
	schema flowsome.Schema
	rows   [][]interface{}
}

// CreateTable assembles a Table from Partitions, in order. Row values are shared, not copied.
func CreateTable(schema flowsome.Schema, parts []flowsome.OperablePartition) flowsome.Table {
	numRows := 0
	for _, p := range parts {
		numRows += p.GetNumRows()
	}
	rows := make([][]interface{}, 0, numRows)
	for _, p := range parts {
		if ip, ok := p.(*partitionImpl); ok {
			rows = append(rows, ip.rows...)
			continue
		}
		for i := 0; i < p.GetNumRows(); i++ {
			rows = append(rows, p.GetRow(i).Values())
		}
	}
	return &tableImpl{id: newID(), schema: schema, rows: rows}
}

// CreateTableFromValues assembles a Table from raw values, coercing each to its column's type.
// All coercion failures are reported together.
func CreateTableFromValues(schema flowsome.Schema, values [][]interface{}) (flowsome.Table, error) {
	var multierr *multierror.Error
	types := schema.ColumnTypes()
	rows := make([][]interface{}, 0, len(values))
	for i, in := range values {
		if len(in) != len(types) {
			multierr = multierror.Append(multierr, fmt.Errorf("Row %d has %d values, but the schema has %d columns", i, len(in), len(types)))
			continue
		}
		out := make([]interface{}, len(in))
		for j, v := range in {
			if v == nil {
				continue
			}
			cv, err := types[j].Coerce(v)
			if err != nil {
				multierr = multierror.Append(multierr, fmt.Errorf("Row %d, column %s: %w", i, schema.ColumnNames()[j], err))
				continue
			}
			out[j] = cv
		}
		rows = append(rows, out)
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &tableImpl{id: newID(), schema: schema, rows: rows}, nil
}

// SplitTable divides a Table into Partitions of at most maxRows Rows
func SplitTable(table flowsome.Table, maxRows int) []flowsome.OperablePartition {
	b := CreateBuilder(maxRows, table.Schema())
	if t, ok := table.(*tableImpl); ok {
		for _, r := range t.rows {
			// cannot fail, since width is guaranteed by the table
			b.Append(r)
		}
		return b.Partitions()
	}
	table.ForEachRow(func(row flowsome.Row) error {
		return b.Append(row.Values())
	})
	return b.Partitions()
}

// ID retrieves the ID of this Table
func (t *tableImpl) ID() string {
	return t.id
}

// Schema returns the Schema of this Table
func (t *tableImpl) Schema() flowsome.Schema {
	return t.schema
}

// NumRows returns the number of Rows in this Table
func (t *tableImpl) NumRows() int {
	return len(t.rows)
}

// GetRow retrieves a specific Row from this Table
func (t *tableImpl) GetRow(rowNum int) flowsome.Row {
	return &rowImpl{values: t.rows[rowNum], schema: t.schema}
}

// ForEachRow iterates over the Rows of this Table, in order
func (t *tableImpl) ForEachRow(fn flowsome.MapOperation) error {
	row := &rowImpl{schema: t.schema}
	for _, values := range t.rows {
		row.values = values
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// Column returns all values of a column, in row order
func (t *tableImpl) Column(colName string) ([]interface{}, error) {
	col, err := t.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(t.rows))
	for i, r := range t.rows {
		values[i] = r[col.Index()]
	}
	return values, nil
}

// ToString returns a string representation of this Table
func (t *tableImpl) ToString() string {
	var res strings.Builder
	fmt.Fprintf(&res, "%s\n", t.schema.ToString())
	for i := range t.rows {
		fmt.Fprintln(&res, t.GetRow(i).ToString())
	}
	return res.String()
}
