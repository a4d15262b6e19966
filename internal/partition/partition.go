package partition

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	uuid "github.com/gofrs/uuid"
)

// DefaultMaxRows is the maximum number of rows in a Partition unless configured otherwise
const DefaultMaxRows = 128

// partitionImpl is Flowsome's internal implementation of Partition.
// Each row is a slice of positional values, with nil representing null.
type partitionImpl struct {
	id      string
	maxRows int
	rows    [][]interface{}
	schema  flowsome.Schema
}

// newID produces a fresh UUID string
func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		// the only failure mode is an exhausted entropy source
		panic(fmt.Errorf("failed to generate UUID: %w", err))
	}
	return id.String()
}

// createPartitionImpl creates a new, empty Partition for a schema
func createPartitionImpl(maxRows int, initialCapacity int, schema flowsome.Schema) *partitionImpl {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if initialCapacity > maxRows {
		initialCapacity = maxRows
	}
	return &partitionImpl{
		id:      newID(),
		maxRows: maxRows,
		rows:    make([][]interface{}, 0, initialCapacity),
		schema:  schema,
	}
}

// CreatePartition creates a new, empty Partition for a schema
func CreatePartition(maxRows int, initialCapacity int, schema flowsome.Schema) flowsome.OperablePartition {
	return createPartitionImpl(maxRows, initialCapacity, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return len(p.rows)
}

// GetSchema retrieves the Schema of the Rows in this Partition
func (p *partitionImpl) GetSchema() flowsome.Schema {
	return p.schema
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) flowsome.Row {
	return &rowImpl{values: p.rows[rowNum], schema: p.schema}
}

// getRowValues retrieves the raw values of a specific row from this Partition
func (p *partitionImpl) getRowValues(rowNum int) []interface{} {
	return p.rows[rowNum]
}

// ForEachRow iterates over Rows in a Partition
func (p *partitionImpl) ForEachRow(fn flowsome.MapOperation) error {
	row := &rowImpl{schema: p.schema}
	for i := 0; i < len(p.rows); i++ {
		row.values = p.rows[i]
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// ToString returns a string representation of this Partition
func (p *partitionImpl) ToString() string {
	var res strings.Builder
	fmt.Fprintf(&res, "Partition %s (%d/%d rows)\n", p.id, len(p.rows), p.maxRows)
	for i := range p.rows {
		fmt.Fprintln(&res, p.GetRow(i).ToString())
	}
	return res.String()
}
