package flowsome

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator

// DataFrameOperationResult is the result of validating a DataFrameOperation against a DataFrame
type DataFrameOperationResult struct {
	Task       Task
	DataSchema Schema
}

// DataFrameOperation - A generic DataFrame transform, returning a Task that performs the "work" and a (potentially) altered Schema.
// Do is invoked once when the operation is added to a DataFrame, and again whenever the DataFrame is planned for execution,
// so it must not have side effects beyond constructing the Task.
type DataFrameOperation struct {
	TaskType TaskType
	Do       func(df DataFrame) (*DataFrameOperationResult, error)
}

// MapOperation - A generic function for manipulating Rows in-place
type MapOperation func(row Row) error

// FilterOperation - A generic function for determining whether or not a Row should be retained
type FilterOperation func(row Row) (bool, error)

// ReshapeOperation - A generic function for populating a Row under a new Schema from a source Row
type ReshapeOperation func(in Row, out Row) error

// JoinPredicate - A generic function for determining whether a pair of Rows should be joined
type JoinPredicate func(left Row, right Row) (bool, error)
