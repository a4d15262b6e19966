package partition

import (
	"github.com/flowsome/flowsome"
)

// Builder accumulates Rows into a sequence of Partitions, starting a new
// Partition whenever the current one is full
type Builder struct {
	maxRows int
	schema  flowsome.Schema
	parts   []flowsome.OperablePartition
	current *partitionImpl
	numRows int
}

// CreateBuilder is a factory for Builders
func CreateBuilder(maxRows int, schema flowsome.Schema) *Builder {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Builder{
		maxRows: maxRows,
		schema:  schema,
		parts:   make([]flowsome.OperablePartition, 0),
	}
}

// Append adds a Row of already-coerced values to the end of the current Partition
func (b *Builder) Append(values []interface{}) error {
	if b.current == nil || b.current.GetNumRows() >= b.maxRows {
		b.current = createPartitionImpl(b.maxRows, 0, b.schema)
		b.parts = append(b.parts, b.current)
	}
	if err := b.current.AppendRowValues(values); err != nil {
		return err
	}
	b.numRows++
	return nil
}

// NumRows returns the number of Rows appended so far
func (b *Builder) NumRows() int {
	return b.numRows
}

// Partitions returns the Partitions built so far, and resets this Builder
func (b *Builder) Partitions() []flowsome.OperablePartition {
	parts := b.parts
	b.parts = make([]flowsome.OperablePartition, 0)
	b.current = nil
	b.numRows = 0
	return parts
}
