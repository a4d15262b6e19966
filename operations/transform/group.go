package transform

import (
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/accumulators"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/partition"
	"github.com/flowsome/flowsome/internal/pindex/hashmap"
	iutil "github.com/flowsome/flowsome/internal/util"
	"github.com/hashicorp/go-multierror"
)

// groupTask buffers one set of Accumulators per distinct key, emitting a Row per group once all input has been seen
type groupTask struct {
	keyIndices []int
	factory    flowsome.AccumulatorFactory
	schema     flowsome.Schema
	index      *hashmap.Index
	keys       [][]interface{}
	accs       []flowsome.Accumulator
}

func (s *groupTask) RunInitialize(sctx flowsome.StageContext) error {
	s.index = hashmap.CreateIndex()
	s.keys = nil
	s.accs = nil
	return nil
}

func (s *groupTask) accumulate(row flowsome.Row) error {
	keyValues := make([]interface{}, len(s.keyIndices))
	for i, idx := range s.keyIndices {
		v, err := row.GetAt(idx)
		if err != nil {
			return err
		}
		keyValues[i] = v
	}
	key, err := iutil.EncodeKey(keyValues)
	if err != nil {
		return err
	}
	gidx, isNew := s.index.GetOrAssign(key, len(s.accs))
	if isNew {
		s.keys = append(s.keys, keyValues)
		s.accs = append(s.accs, s.factory())
	}
	return s.accs[gidx].Accumulate(row)
}

func (s *groupTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	var multierr *multierror.Error
	for i := 0; i < previous.GetNumRows(); i++ {
		row := previous.GetRow(i)
		if err := s.accumulate(row); err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("Group Error: %w\nRow: %s", err, row.ToString()))
		}
	}
	return nil, multierr.ErrorOrNil()
}

func (s *groupTask) RunFinalize(sctx flowsome.StageContext) ([]flowsome.OperablePartition, error) {
	if len(s.keyIndices) == 0 && len(s.accs) == 0 {
		// a global aggregation always produces exactly one Row
		s.keys = append(s.keys, []interface{}{})
		s.accs = append(s.accs, s.factory())
	}
	builder := partition.CreateBuilder(sctx.TargetPartitionSize(), s.schema)
	for i, acc := range s.accs {
		values := make([]interface{}, 0, s.schema.NumColumns())
		values = append(values, s.keys[i]...)
		values = append(values, acc.Value().([]interface{})...)
		if err := builder.Append(values); err != nil {
			return nil, err
		}
	}
	s.index = nil
	s.keys = nil
	s.accs = nil
	return builder.Partitions(), nil
}

// GroupBy groups Rows by the values of the key columns, and computes each Aggregation
// over every group. The result holds the key columns followed by one column per
// Aggregation. Groups appear in order of first appearance, and null keys form a
// group of their own. With no keys, the whole input is one group and exactly one
// Row is produced, even for empty input.
func GroupBy(keys []flowsome.ColumnRef, aggs ...accumulators.Aggregation) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.GroupTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if len(keys) == 0 && len(aggs) == 0 {
				return nil, &errors.AggregationSpecError{Reason: "GroupBy requires at least one key or aggregation"}
			}
			inSchema := d.GetSchema()
			keyNames := make([]string, len(keys))
			keyIndices := make([]int, len(keys))
			for i, ref := range keys {
				col, err := inSchema.Resolve(ref)
				if err != nil {
					return nil, err
				}
				keyNames[i] = col.Name()
				keyIndices[i] = col.Index()
			}
			newSchema, err := inSchema.Project(keyNames)
			if err != nil {
				return nil, err
			}
			factories := make([]flowsome.AccumulatorFactory, len(aggs))
			for i, agg := range aggs {
				bound, err := agg.Bind(inSchema)
				if err != nil {
					return nil, err
				}
				if _, err := newSchema.CreateColumn(bound.Output, bound.OutputType); err != nil {
					return nil, &errors.AggregationSpecError{Output: bound.Output, Reason: "output name clashes with another column"}
				}
				factories[i] = bound.Factory
			}
			return &flowsome.DataFrameOperationResult{
				Task: &groupTask{
					keyIndices: keyIndices,
					factory:    accumulators.Compose(factories...),
					schema:     newSchema,
				},
				DataSchema: newSchema,
			}, nil
		},
	}
}

// Aggregate computes each Aggregation over the whole input, producing a single Row
func Aggregate(aggs ...accumulators.Aggregation) *flowsome.DataFrameOperation {
	return GroupBy(nil, aggs...)
}

// Distinct retains one Row per distinct combination of values of the given columns,
// in order of first appearance
func Distinct(keys ...flowsome.ColumnRef) *flowsome.DataFrameOperation {
	return GroupBy(keys)
}
