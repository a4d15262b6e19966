package datasource

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/dataframe"
	"github.com/flowsome/flowsome/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source flowsome.DataSource, parser flowsome.DataSourceParser, schema flowsome.Schema) flowsome.DataFrame {
	return dataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition creates a new Partition containing an empty byte array and a schema (useful for the implementation of Parsers)
func CreateBuildablePartition(maxRows int, schema flowsome.Schema) flowsome.BuildablePartition {
	return partition.CreateBuildablePartition(maxRows, schema)
}

// CreatePartitionIterator produces a PartitionIterator over already-built Partitions (useful for the implementation of DataSources)
func CreatePartitionIterator(parts []flowsome.OperablePartition) flowsome.PartitionIterator {
	return dataframe.CreatePartitionSliceIterator(parts)
}

// CreateTable assembles Partitions into a Table (useful for the implementation of Sinks and tests)
func CreateTable(schema flowsome.Schema, parts []flowsome.OperablePartition) flowsome.Table {
	return partition.CreateTable(schema, parts)
}

// CreateTableFromValues builds a Table from rows of raw values, coercing each value to its column's type
func CreateTableFromValues(schema flowsome.Schema, values [][]interface{}) (flowsome.Table, error) {
	return partition.CreateTableFromValues(schema, values)
}

// SplitTable divides a Table into Partitions of at most maxRows Rows
func SplitTable(table flowsome.Table, maxRows int) []flowsome.OperablePartition {
	return partition.SplitTable(table, maxRows)
}
