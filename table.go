package flowsome

// A Table is an immutable, ordered collection of Rows under a Schema.
// Tables are produced by collecting the output of a DataFrame.
type Table interface {
	ID() string                                              // ID retrieves the ID of this Table
	Schema() Schema                                          // Schema returns the Schema of this Table
	NumRows() int                                            // NumRows returns the number of Rows in this Table
	GetRow(rowNum int) Row                                   // GetRow retrieves a specific Row from this Table. Rows must not be modified.
	ForEachRow(fn MapOperation) error                        // ForEachRow iterates over the Rows of this Table, in order
	Column(colName string) (values []interface{}, err error) // Column returns all values of a column, in row order
	ToString() string                                        // ToString returns a string representation of this Table
}
