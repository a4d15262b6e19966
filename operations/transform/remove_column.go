package transform

import (
	"github.com/flowsome/flowsome"
)

// RemoveColumn removes existing columns
func RemoveColumn(colNames ...string) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.ProjectTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Clone()
			for _, colName := range colNames {
				if _, err := newSchema.RemoveColumn(colName); err != nil {
					return nil, err
				}
			}
			indices := make([]int, 0, newSchema.NumColumns())
			for _, name := range newSchema.ColumnNames() {
				col, err := d.GetSchema().GetColumn(name)
				if err != nil {
					return nil, err
				}
				indices = append(indices, col.Index())
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &projectTask{schema: newSchema, indices: indices},
				DataSchema: newSchema,
			}, nil
		},
	}
}
