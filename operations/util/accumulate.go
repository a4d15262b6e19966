package util

import (
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/partition"
	"github.com/flowsome/flowsome/schema"
)

type accumulateTask struct {
	facc   flowsome.AccumulatorFactory
	schema flowsome.Schema
	acc    flowsome.Accumulator
}

func (s *accumulateTask) RunInitialize(sctx flowsome.StageContext) error {
	s.acc = s.facc()
	return nil
}

func (s *accumulateTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	return nil, previous.ForEachRow(s.acc.Accumulate)
}

func (s *accumulateTask) RunFinalize(sctx flowsome.StageContext) ([]flowsome.OperablePartition, error) {
	out := partition.CreatePartition(1, 1, s.schema)
	row, err := out.AppendEmptyRow()
	if err != nil {
		return nil, err
	}
	if err := row.SetAt(0, s.acc.Value()); err != nil {
		return nil, fmt.Errorf("Unable to store accumulated value: %w", err)
	}
	s.acc = nil
	return []flowsome.OperablePartition{out}, nil
}

// Accumulate combines every Row using a user-provided Accumulator, producing a
// single Row with one column, colName, holding the Accumulator's value
func Accumulate(colName string, colType flowsome.ColumnType, facc flowsome.AccumulatorFactory) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.GroupTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if facc == nil {
				return nil, fmt.Errorf("Accumulate requires an AccumulatorFactory")
			}
			newSchema, err := schema.CreateSchemaFromColumns([]string{colName}, []flowsome.ColumnType{colType})
			if err != nil {
				return nil, err
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &accumulateTask{facc: facc, schema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
