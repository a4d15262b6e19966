package transform

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/expression"
	iutil "github.com/flowsome/flowsome/internal/util"
)

type filterTask struct {
	fn flowsome.FilterOperation
}

func (s *filterTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *filterTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	result, err := previous.FilterRows(s.fn)
	return []flowsome.OperablePartition{result}, err
}

func filterOperation(build func(schema flowsome.Schema) (flowsome.FilterOperation, error)) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.FilterTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			fn, err := build(d.GetSchema())
			if err != nil {
				return nil, err
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}

// Filter filters Rows out of a Partition, creating a new one
func Filter(fn flowsome.FilterOperation) *flowsome.DataFrameOperation {
	return filterOperation(func(schema flowsome.Schema) (flowsome.FilterOperation, error) {
		return fn, nil
	})
}

// FilterExpr filters Rows using an expression over column values, such as
// `fare > 10 && vendor in ["a", "b"]`. Columns are referenced by name, or as
// $env["column name"] when the name is not an identifier. Comparisons involving
// null values are false.
func FilterExpr(src string) *flowsome.DataFrameOperation {
	return filterOperation(func(schema flowsome.Schema) (flowsome.FilterOperation, error) {
		return expression.CompilePredicate(src, schema)
	})
}

// FilterWhere filters Rows using a condition tree. Conditions are either
// {"AND": [cond, ...]}, {"OR": [cond, ...]}, or {column: {op: operand}},
// where op is one of eq, ne, gt, lt, ge, le or in. Operands are coerced to the
// column's type, and comparisons against null values are false.
func FilterWhere(cond map[string]interface{}) *flowsome.DataFrameOperation {
	return filterOperation(func(schema flowsome.Schema) (flowsome.FilterOperation, error) {
		return expression.CompileCondition(cond, schema)
	})
}
