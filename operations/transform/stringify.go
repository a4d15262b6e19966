package transform

import (
	"strings"

	"github.com/flowsome/flowsome"
	iutil "github.com/flowsome/flowsome/internal/util"
)

type stringifyTask struct {
	schema flowsome.Schema
	fn     flowsome.ReshapeOperation
}

func (s *stringifyTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

func (s *stringifyTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	next, err := previous.Reshape(s.schema, s.fn)
	return []flowsome.OperablePartition{next}, err
}

// Stringify converts list and struct columns into string columns, for sinks
// which cannot represent nested data. Lists are joined with ", ", skipping null
// elements, and structs are encoded as JSON objects.
func Stringify() *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.MapTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			inTypes := d.GetSchema().ColumnTypes()
			newSchema := d.GetSchema().Clone()
			for i, name := range d.GetSchema().ColumnNames() {
				switch inTypes[i].(type) {
				case *flowsome.ListColumnType, *flowsome.StructColumnType:
					if _, err := newSchema.CastColumn(name, &flowsome.StringColumnType{}); err != nil {
						return nil, err
					}
				}
			}
			fn := func(in flowsome.Row, out flowsome.Row) error {
				for i, v := range in.Values() {
					if v == nil {
						continue
					}
					sv, err := stringifyValue(inTypes[i], v)
					if err != nil {
						return err
					}
					if err := out.SetAt(i, sv); err != nil {
						return err
					}
				}
				return nil
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &stringifyTask{schema: newSchema, fn: iutil.SafeReshapeOperation(fn)},
				DataSchema: newSchema,
			}, nil
		},
	}
}

// stringifyValue renders nested values as strings, leaving other values untouched
func stringifyValue(colType flowsome.ColumnType, v interface{}) (interface{}, error) {
	switch ct := colType.(type) {
	case *flowsome.ListColumnType:
		list := v.([]interface{})
		parts := make([]string, 0, len(list))
		for _, e := range list {
			if e == nil {
				continue
			}
			se, err := stringifyValue(ct.Elem, e)
			if err != nil {
				return nil, err
			}
			if s, ok := se.(string); ok {
				parts = append(parts, s)
			} else {
				parts = append(parts, ct.Elem.ToString(e))
			}
		}
		return strings.Join(parts, ", "), nil
	case *flowsome.StructColumnType:
		return iutil.StructToJSON(ct, v.(map[string]interface{}))
	}
	return v, nil
}
