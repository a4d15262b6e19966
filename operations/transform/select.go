package transform

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
)

// projectTask narrows or reorders the columns of each Partition
type projectTask struct {
	schema  flowsome.Schema
	indices []int
}

func (s *projectTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *projectTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	return []flowsome.OperablePartition{previous.Project(s.schema, s.indices)}, nil
}

// Select projects the DataFrame onto the referenced columns, in the given order
func Select(refs ...flowsome.ColumnRef) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.ProjectTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if len(refs) == 0 {
				return nil, &errors.SchemaError{Reason: "Select requires at least one column"}
			}
			names := make([]string, len(refs))
			indices := make([]int, len(refs))
			for i, ref := range refs {
				col, err := d.GetSchema().Resolve(ref)
				if err != nil {
					return nil, err
				}
				names[i] = col.Name()
				indices[i] = col.Index()
			}
			newSchema, err := d.GetSchema().Project(names)
			if err != nil {
				return nil, err
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &projectTask{schema: newSchema, indices: indices},
				DataSchema: newSchema,
			}, nil
		},
	}
}
