package partition

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
)

// CreateBuildablePartition creates a new Partition which can be populated by DataSources and Parsers
func CreateBuildablePartition(maxRows int, schema flowsome.Schema) flowsome.BuildablePartition {
	return createPartitionImpl(maxRows, maxRows, schema)
}

// canInsertRowValues is a helper function to check whether a row fits in this Partition
func (p *partitionImpl) canInsertRowValues(values []interface{}) error {
	if len(p.rows) >= p.maxRows {
		return errors.PartitionFullError{}
	} else if len(values) != p.schema.NumColumns() {
		return errors.IncompatibleRowError{}
	}
	return nil
}

// AppendEmptyRow is a convenient way to add an empty Row to the end of this Partition,
// returning the Row so that Row methods can be used to populate it
func (p *partitionImpl) AppendEmptyRow() (flowsome.Row, error) {
	values := make([]interface{}, p.schema.NumColumns())
	if err := p.canInsertRowValues(values); err != nil {
		return nil, err
	}
	p.rows = append(p.rows, values)
	return &rowImpl{values: values, schema: p.schema}, nil
}

// AppendRowValues adds a Row of already-coerced values to the end of this Partition,
// if it isn't full and if the Row fits within the schema. The slice is retained.
func (p *partitionImpl) AppendRowValues(values []interface{}) error {
	if err := p.canInsertRowValues(values); err != nil {
		return err
	}
	p.rows = append(p.rows, values)
	return nil
}
