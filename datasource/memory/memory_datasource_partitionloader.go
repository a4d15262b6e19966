package memory

import (
	"bytes"
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
)

// PartitionLoader is capable of loading partitions of data from a buffer
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load is capable of loading partitions of data from a buffer
func (pl *PartitionLoader) Load(parser flowsome.DataSourceParser, schema flowsome.Schema) (flowsome.PartitionIterator, error) {
	if parser == nil {
		return nil, fmt.Errorf("Memory DataSource requires a DataSourceParser")
	}
	r := bytes.NewReader(pl.source.data[pl.idx])
	pi, err := parser.Parse(r, pl.source, schema, nil)
	if err != nil {
		return nil, err
	}
	return pi, nil
}

// tablePartitionLoader serves the Rows of a Table
type tablePartitionLoader struct {
	source *TableDataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *tablePartitionLoader) ToString() string {
	return fmt.Sprintf("Table loader: %s", pl.source.table.ID())
}

// Load splits the Table into Partitions. The parser is unused.
func (pl *tablePartitionLoader) Load(parser flowsome.DataSourceParser, schema flowsome.Schema) (flowsome.PartitionIterator, error) {
	if err := schema.Equals(pl.source.table.Schema()); err != nil {
		return nil, fmt.Errorf("Table does not match DataFrame schema: %w", err)
	}
	return datasource.CreatePartitionIterator(datasource.SplitTable(pl.source.table, pl.source.partitionSize)), nil
}
