package dataframe

import (
	"fmt"

	"github.com/flowsome/flowsome"
)

// A dataFrameImpl implements DataFrame internally for Flowsome
type dataFrameImpl struct {
	parent   *dataFrameImpl               // the parent DataFrame. Nil if this is the root.
	op       *flowsome.DataFrameOperation // the operation which produced this DataFrame from its parent. Nil if this is the root.
	task     flowsome.Task                // the task represented by this DataFrame, executed to produce the next one
	taskType flowsome.TaskType            // a unique name for the type of task this DataFrame represents
	source   flowsome.DataSource          // the source of the data
	parser   flowsome.DataSourceParser    // the parser for the source data
	schema   flowsome.Schema              // the schema of the data at this task
}

// CreateDataFrame is a factory for DataFrames. This function is not intended to be used directly,
// as DataFrames are returned by DataSource packages.
func CreateDataFrame(source flowsome.DataSource, parser flowsome.DataSourceParser, schema flowsome.Schema) flowsome.DataFrame {
	return &dataFrameImpl{
		parent:   nil,
		task:     &noOpTask{},
		taskType: flowsome.ExtractTaskType,
		source:   source,
		parser:   parser,
		schema:   schema,
	}
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() flowsome.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() flowsome.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() flowsome.DataSourceParser {
	return df.parser
}

// GetTaskType returns the type of the Task represented by this DataFrame
func (df *dataFrameImpl) GetTaskType() flowsome.TaskType {
	return df.taskType
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s).
func (df *dataFrameImpl) To(ops ...*flowsome.DataFrameOperation) (flowsome.DataFrame, error) {
	next := df
	for _, op := range ops {
		child, err := next.apply(op)
		if err != nil {
			return nil, err
		}
		next = child
	}
	return next, nil
}

// apply validates an operation against this DataFrame, producing a child DataFrame
func (df *dataFrameImpl) apply(op *flowsome.DataFrameOperation) (*dataFrameImpl, error) {
	if op == nil || op.Do == nil {
		return nil, fmt.Errorf("DataFrameOperation must not be nil")
	}
	if df.taskType == flowsome.CollectTaskType {
		return nil, fmt.Errorf("No tasks can follow a Collect()")
	}
	result, err := op.Do(df)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Task == nil || result.DataSchema == nil {
		return nil, fmt.Errorf("%s operation did not produce a Task and Schema", op.TaskType)
	}
	return &dataFrameImpl{
		parent:   df,
		op:       op,
		task:     result.Task,
		taskType: op.TaskType,
		source:   df.source,
		parser:   df.parser,
		schema:   result.DataSchema,
	}, nil
}
