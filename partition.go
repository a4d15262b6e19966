package flowsome

// A Partition is a bounded portion of a tabular dataset, consisting of multiple Rows.
// Partitions are not generally interacted with directly, instead being
// manipulated by DataFrame Tasks.
type Partition interface {
	ID() string                       // ID retrieves the ID of this Partition
	GetMaxRows() int                  // GetMaxRows retrieves the maximum number of rows in this Partition
	GetNumRows() int                  // GetNumRows retrieves the number of rows in this Partition
	GetRow(rowNum int) Row            // GetRow retrieves a specific row from this Partition
	GetSchema() Schema                // GetSchema retrieves the Schema of the Rows in this Partition
	ForEachRow(fn MapOperation) error // ForEachRow iterates over Rows in a Partition. Rows must not be modified.
}

// A BuildablePartition can be built. Used in the implementation of DataSources and Parsers
type BuildablePartition interface {
	Partition
	AppendEmptyRow() (Row, error)               // AppendEmptyRow is a convenient way to add an empty Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
	AppendRowValues(values []interface{}) error // AppendRowValues adds a Row of already-coerced values to the end of this Partition, if it isn't full and if the Row fits within the schema
}

// An OperablePartition can be operated on. Operations never modify the
// receiver, producing fresh Partitions instead. When a row-level operation
// fails for some Rows, the returned Partition holds the remaining Rows and
// the error is a *multierror.Error describing the failures.
type OperablePartition interface {
	BuildablePartition
	MapRows(fn MapOperation) (OperablePartition, error)                       // MapRows runs a MapOperation on a copy of each row in this Partition
	FilterRows(fn FilterOperation) (OperablePartition, error)                 // FilterRows filters the Rows in the current Partition, creating a new one
	Reshape(newSchema Schema, fn ReshapeOperation) (OperablePartition, error) // Reshape produces a Partition under newSchema, populating each new Row from its source Row
	Project(newSchema Schema, indices []int) OperablePartition                // Project produces a Partition containing only the columns at the given source indices
	Truncate(numRows int) OperablePartition                                   // Truncate produces a Partition containing at most the first numRows Rows
	Relabel(newSchema Schema) OperablePartition                               // Relabel produces a Partition sharing these Rows under a Schema of the same width and types, such as one with renamed columns
}
