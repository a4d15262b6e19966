package transform

import (
	"fmt"
	"sort"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/partition"
	iutil "github.com/flowsome/flowsome/internal/util"
)

// SortKey orders Rows by a column
type SortKey struct {
	Ref        flowsome.ColumnRef
	Descending bool
}

// Asc orders Rows by a column, smallest first
func Asc(colName string) SortKey {
	return SortKey{Ref: flowsome.Col(colName)}
}

// Desc orders Rows by a column, largest first
func Desc(colName string) SortKey {
	return SortKey{Ref: flowsome.Col(colName), Descending: true}
}

// sortTask buffers every incoming Row, emitting them in order once all input has been seen
type sortTask struct {
	schema     flowsome.Schema
	indices    []int
	descending []bool
	rows       [][]interface{}
}

func (s *sortTask) RunInitialize(sctx flowsome.StageContext) error {
	s.rows = nil
	return nil
}

func (s *sortTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	err := previous.ForEachRow(func(row flowsome.Row) error {
		s.rows = append(s.rows, row.Values())
		return nil
	})
	return nil, err
}

// compare orders two Rows by every key in turn. Nulls sort last regardless of direction.
func (s *sortTask) compare(a []interface{}, b []interface{}) (int, error) {
	for k, idx := range s.indices {
		av, bv := a[idx], b[idx]
		if av == nil && bv == nil {
			continue
		} else if av == nil {
			return 1, nil
		} else if bv == nil {
			return -1, nil
		}
		cmp, err := iutil.CompareValues(av, bv)
		if err != nil {
			return 0, err
		}
		if cmp != 0 {
			if s.descending[k] {
				return -cmp, nil
			}
			return cmp, nil
		}
	}
	return 0, nil
}

func (s *sortTask) RunFinalize(sctx flowsome.StageContext) ([]flowsome.OperablePartition, error) {
	var sortErr error
	sort.SliceStable(s.rows, func(i, j int) bool {
		cmp, err := s.compare(s.rows[i], s.rows[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, fmt.Errorf("Unable to sort rows: %w", sortErr)
	}
	builder := partition.CreateBuilder(sctx.TargetPartitionSize(), s.schema)
	for _, values := range s.rows {
		if err := builder.Append(values); err != nil {
			return nil, err
		}
	}
	s.rows = nil
	return builder.Partitions(), nil
}

// Sort orders Rows by the given keys. The sort is stable, and nulls sort last.
func Sort(keys ...SortKey) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.SortTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if len(keys) == 0 {
				return nil, &errors.SchemaError{Reason: "Sort requires at least one key"}
			}
			indices := make([]int, len(keys))
			descending := make([]bool, len(keys))
			for i, key := range keys {
				col, err := d.GetSchema().Resolve(key.Ref)
				if err != nil {
					return nil, err
				}
				switch col.Type().(type) {
				case *flowsome.ListColumnType, *flowsome.StructColumnType:
					return nil, &errors.SchemaError{Column: col.Name(), Reason: fmt.Sprintf("cannot sort by column of type %s", col.Type().Name())}
				}
				indices[i] = col.Index()
				descending[i] = key.Descending
			}
			newSchema := d.GetSchema().Clone()
			return &flowsome.DataFrameOperationResult{
				Task:       &sortTask{schema: newSchema, indices: indices, descending: descending},
				DataSchema: newSchema,
			}, nil
		},
	}
}
