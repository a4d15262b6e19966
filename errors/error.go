package errors

import (
	"fmt"
	"strings"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct{}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return "Row width is not compatible with Schema"
}

// PartitionFullError occurs when a Partition has reached its max size an a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// SchemaError occurs when a column reference cannot be resolved, a column
// name is duplicated or clashes, or column types are incompatible
type SchemaError struct {
	Column string
	Reason string
}

// Error returns a textual representation of this SchemaError
func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("Schema error: %s", e.Reason)
	}
	return fmt.Sprintf("Schema error for column %s: %s", e.Column, e.Reason)
}

// JoinSpecError occurs when a join specification is malformed
type JoinSpecError struct{ Reason string }

// Error returns a textual representation of this JoinSpecError
func (e *JoinSpecError) Error() string {
	return fmt.Sprintf("Invalid join specification: %s", e.Reason)
}

// AggregationSpecError occurs when an aggregation specification is malformed
type AggregationSpecError struct {
	Output string
	Reason string
}

// Error returns a textual representation of this AggregationSpecError
func (e *AggregationSpecError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("Invalid aggregation: %s", e.Reason)
	}
	return fmt.Sprintf("Invalid aggregation %s: %s", e.Output, e.Reason)
}

// UnsupportedFormatError occurs when no reader or writer exists for a file format
type UnsupportedFormatError struct{ Format string }

// Error returns a textual representation of this UnsupportedFormatError
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("Unsupported format %q", e.Format)
}

// PipelineCycleError occurs when the tasks of a pipeline form a cycle
type PipelineCycleError struct{ Tasks []string }

// Error returns a textual representation of this PipelineCycleError
func (e *PipelineCycleError) Error() string {
	return fmt.Sprintf("Pipeline contains a cycle involving tasks: %s", strings.Join(e.Tasks, ", "))
}

// InvalidPipelineError occurs when a pipeline is structurally invalid
type InvalidPipelineError struct {
	Task   string
	Reason string
}

// Error returns a textual representation of this InvalidPipelineError
func (e *InvalidPipelineError) Error() string {
	if e.Task == "" {
		return fmt.Sprintf("Invalid pipeline: %s", e.Reason)
	}
	return fmt.Sprintf("Invalid pipeline task %s: %s", e.Task, e.Reason)
}

// TaskExecutionError occurs when a pipeline task fails
type TaskExecutionError struct {
	Task string
	Err  error
}

// Error returns a textual representation of this TaskExecutionError
func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("Task %s failed: %v", e.Task, e.Err)
}

// Unwrap returns the underlying cause of this TaskExecutionError
func (e *TaskExecutionError) Unwrap() error {
	return e.Err
}
