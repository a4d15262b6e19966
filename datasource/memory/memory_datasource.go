package memory

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
)

// DataSource is a set of buffers containing data which will be manipulating according to a DataFrame.
// Each buffer is parsed into Partitions independently, in order.
type DataSource struct {
	data   [][]byte
	schema flowsome.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(data [][]byte, parser flowsome.DataSourceParser, schema flowsome.Schema) flowsome.DataFrame {
	source := &DataSource{data, schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (fs *DataSource) Analyze() (flowsome.PartitionMap, error) {
	return &PartitionMap{
		source: fs,
	}, nil
}

// TableDataSource serves the Rows of an existing Table
type TableDataSource struct {
	table         flowsome.Table
	partitionSize int
}

// CreateTableDataFrame is a factory for DataFrames over an existing Table. The Table
// is served in Partitions of at most partitionSize Rows (128 if partitionSize <= 0).
func CreateTableDataFrame(table flowsome.Table, partitionSize int) flowsome.DataFrame {
	source := &TableDataSource{table: table, partitionSize: partitionSize}
	return datasource.CreateDataFrame(source, nil, table.Schema())
}

// CreateValuesDataFrame is a factory for DataFrames over literal rows of values,
// which are coerced to the types in schema
func CreateValuesDataFrame(schema flowsome.Schema, values [][]interface{}) (flowsome.DataFrame, error) {
	table, err := datasource.CreateTableFromValues(schema, values)
	if err != nil {
		return nil, err
	}
	return CreateTableDataFrame(table, 0), nil
}

// Analyze returns a PartitionMap with a single PartitionLoader for the whole Table
func (ts *TableDataSource) Analyze() (flowsome.PartitionMap, error) {
	return &tablePartitionMap{source: ts}, nil
}
