package flowsome

import "io"

// PartitionLoader is a description of how to load specific Partitions of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic.
type PartitionLoader interface {
	ToString() string                                                       // for logging
	Load(parser DataSourceParser, schema Schema) (PartitionIterator, error) // how to actually load data
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), an executor will iterate through
// PartitionLoaders in order.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be manipulating according to transformations and actions defined in a DataFrame.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
}

// DataSourceParser is a parser which turns raw bytes from a DataSource into Partitions.
// DataSources which produce typed records themselves (such as databases) do not require one.
type DataSourceParser interface {
	PartitionSize() int // PartitionSize returns the maximum size in rows of Partitions produced by this DataSourceParser
	Parse(r io.Reader, source DataSource, schema Schema, onIteratorEnd func()) (PartitionIterator, error)
}
