package transform

import (
	"github.com/flowsome/flowsome"
	iutil "github.com/flowsome/flowsome/internal/util"
)

// ColumnOperation computes the value of a new column from a Row. A nil value is null.
type ColumnOperation func(row flowsome.Row) (interface{}, error)

type withColumnTask struct {
	schema flowsome.Schema
	fn     flowsome.ReshapeOperation
}

func (s *withColumnTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *withColumnTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	next, err := previous.Reshape(s.schema, s.fn)
	return []flowsome.OperablePartition{next}, err
}

// WithColumn appends a new column with a specific type and name,
// computing its value for each Row with fn
func WithColumn(colName string, colType flowsome.ColumnType, fn ColumnOperation) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.MapTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().CreateColumn(colName, colType)
			if err != nil {
				return nil, err
			}
			numOld := d.GetSchema().NumColumns()
			reshape := func(in flowsome.Row, out flowsome.Row) error {
				values := in.Values()
				for i := 0; i < numOld; i++ {
					if err := out.SetAt(i, values[i]); err != nil {
						return err
					}
				}
				v, err := fn(in)
				if err != nil {
					return err
				}
				return out.SetAt(numOld, v)
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &withColumnTask{schema: newSchema, fn: iutil.SafeReshapeOperation(reshape)},
				DataSchema: newSchema,
			}, nil
		},
	}
}

// AddColumn declares that a new (empty) column with a
// specific type and name should be available to the
// next Task of the DataFrame pipeline
func AddColumn(colName string, colType flowsome.ColumnType) *flowsome.DataFrameOperation {
	return WithColumn(colName, colType, func(row flowsome.Row) (interface{}, error) {
		return nil, nil
	})
}
