package transform

import (
	"github.com/flowsome/flowsome"
	iutil "github.com/flowsome/flowsome/internal/util"
)

type mapTask struct {
	fn flowsome.MapOperation
}

func (s *mapTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *mapTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	next, err := previous.MapRows(s.fn)
	return []flowsome.OperablePartition{next}, err
}

// Map transforms a Row in-place. Rows for which fn returns an error
// (or panics) are row errors.
func Map(fn flowsome.MapOperation) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.MapTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			return &flowsome.DataFrameOperationResult{
				Task:       &mapTask{fn: iutil.SafeMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
