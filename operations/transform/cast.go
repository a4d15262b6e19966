package transform

import (
	"github.com/flowsome/flowsome"
	iutil "github.com/flowsome/flowsome/internal/util"
)

type castTask struct {
	schema flowsome.Schema
	fn     flowsome.ReshapeOperation
}

func (s *castTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *castTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	next, err := previous.Reshape(s.schema, s.fn)
	return []flowsome.OperablePartition{next}, err
}

func castOperation(colName string, colType flowsome.ColumnType, orNull bool) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.MapTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			col, err := d.GetSchema().GetColumn(colName)
			if err != nil {
				return nil, err
			}
			newSchema, err := d.GetSchema().Clone().CastColumn(colName, colType)
			if err != nil {
				return nil, err
			}
			idx := col.Index()
			fn := func(in flowsome.Row, out flowsome.Row) error {
				values := in.Values()
				for i, v := range values {
					if i == idx {
						continue
					}
					if err := out.SetAt(i, v); err != nil {
						return err
					}
				}
				err := out.SetAt(idx, values[idx])
				if err != nil && orNull {
					return out.SetAt(idx, nil)
				}
				return err
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &castTask{schema: newSchema, fn: iutil.SafeReshapeOperation(fn)},
				DataSchema: newSchema,
			}, nil
		},
	}
}

// Cast changes the type of a column, coercing its values. A value which cannot
// be coerced is a row error.
func Cast(colName string, colType flowsome.ColumnType) *flowsome.DataFrameOperation {
	return castOperation(colName, colType, false)
}

// CastOrNull changes the type of a column, coercing its values. A value which
// cannot be coerced becomes null.
func CastOrNull(colName string, colType flowsome.ColumnType) *flowsome.DataFrameOperation {
	return castOperation(colName, colType, true)
}
