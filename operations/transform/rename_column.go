package transform

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/schema"
)

// renameColumnTask relabels Partitions with the renamed Schema, without touching Row data
type renameColumnTask struct {
	schema flowsome.Schema
}

func (s *renameColumnTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *renameColumnTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	return []flowsome.OperablePartition{previous.Relabel(s.schema)}, nil
}

// RenameColumn renames an existing column
func RenameColumn(oldName string, newName string) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.NoOpTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().RenameColumn(oldName, newName)
			if err != nil {
				return nil, err
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &renameColumnTask{schema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}

// RenameColumns renames several existing columns at once, so names may be swapped
func RenameColumns(mapping map[string]string) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.NoOpTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			for oldName := range mapping {
				if !d.GetSchema().HasColumn(oldName) {
					return nil, &errors.SchemaError{Column: oldName, Reason: "cannot rename column which does not exist"}
				}
			}
			names := d.GetSchema().ColumnNames()
			for i, name := range names {
				if newName, ok := mapping[name]; ok {
					names[i] = newName
				}
			}
			newSchema, err := schema.CreateSchemaFromColumns(names, d.GetSchema().ColumnTypes())
			if err != nil {
				return nil, err
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &renameColumnTask{schema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
