package partition

import (
	"github.com/flowsome/flowsome"
	"github.com/hashicorp/go-multierror"
)

// createSibling creates a new, empty Partition with the same capacity as p
func (p *partitionImpl) createSibling(schema flowsome.Schema) *partitionImpl {
	return createPartitionImpl(p.maxRows, len(p.rows), schema)
}

// MapRows runs a MapOperation on a copy of each row in this Partition. Rows which
// produce errors are omitted from the result.
func (p *partitionImpl) MapRows(fn flowsome.MapOperation) (flowsome.OperablePartition, error) {
	var multierr *multierror.Error
	result := p.createSibling(p.schema)
	for i := 0; i < len(p.rows); i++ {
		values := make([]interface{}, len(p.rows[i]))
		copy(values, p.rows[i])
		err := fn(&rowImpl{values: values, schema: p.schema})
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		result.rows = append(result.rows, values)
	}
	return result, multierr.ErrorOrNil()
}

// FilterRows filters the Rows in the current Partition, creating a new one
func (p *partitionImpl) FilterRows(fn flowsome.FilterOperation) (flowsome.OperablePartition, error) {
	var multierr *multierror.Error
	result := p.createSibling(p.schema)
	row := &rowImpl{schema: p.schema}
	for i := 0; i < len(p.rows); i++ {
		row.values = p.rows[i]
		shouldKeep, err := fn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if shouldKeep {
			// rows are never modified once handed on, so they can be shared
			result.rows = append(result.rows, p.rows[i])
		}
	}
	return result, multierr.ErrorOrNil()
}

// Reshape produces a Partition under newSchema, populating each new Row from its source Row.
// New Rows start out entirely nil.
func (p *partitionImpl) Reshape(newSchema flowsome.Schema, fn flowsome.ReshapeOperation) (flowsome.OperablePartition, error) {
	var multierr *multierror.Error
	result := p.createSibling(newSchema)
	in := &rowImpl{schema: p.schema}
	for i := 0; i < len(p.rows); i++ {
		in.values = p.rows[i]
		values := make([]interface{}, newSchema.NumColumns())
		err := fn(in, &rowImpl{values: values, schema: newSchema})
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		result.rows = append(result.rows, values)
	}
	return result, multierr.ErrorOrNil()
}

// Project produces a Partition containing only the columns at the given source indices
func (p *partitionImpl) Project(newSchema flowsome.Schema, indices []int) flowsome.OperablePartition {
	result := p.createSibling(newSchema)
	for i := 0; i < len(p.rows); i++ {
		values := make([]interface{}, len(indices))
		for j, idx := range indices {
			values[j] = p.rows[i][idx]
		}
		result.rows = append(result.rows, values)
	}
	return result
}

// Truncate produces a Partition containing at most the first numRows Rows
func (p *partitionImpl) Truncate(numRows int) flowsome.OperablePartition {
	if numRows >= len(p.rows) {
		return p
	}
	if numRows < 0 {
		numRows = 0
	}
	result := p.createSibling(p.schema)
	result.rows = append(result.rows, p.rows[:numRows]...)
	return result
}

// Relabel produces a Partition sharing these Rows under a Schema of the same width and types
func (p *partitionImpl) Relabel(newSchema flowsome.Schema) flowsome.OperablePartition {
	result := p.createSibling(newSchema)
	result.rows = append(result.rows, p.rows...)
	return result
}
