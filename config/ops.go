package config

import (
	"fmt"
	"sort"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/accumulators"
	"github.com/flowsome/flowsome/operations/transform"
)

// build translates an Operation into DataFrameOperations. Every transformation is a
// single DataFrameOperation, except casts, which produce one per column.
func (op *Operation) build() ([]*flowsome.DataFrameOperation, error) {
	var built []*flowsome.DataFrameOperation
	fields := 0
	add := func(o ...*flowsome.DataFrameOperation) {
		built = append(built, o...)
		fields++
	}
	if op.Filter != nil {
		add(transform.FilterWhere(op.Filter))
	}
	if op.FilterExpr != "" {
		add(transform.FilterExpr(op.FilterExpr))
	}
	if op.Select != nil {
		add(transform.Select(refs(op.Select)...))
	}
	if op.Rename != nil {
		add(transform.RenameColumns(op.Rename))
	}
	if op.Remove != nil {
		add(transform.RemoveColumn(op.Remove...))
	}
	if op.Cast != nil {
		ops, err := castAll(op.Cast, transform.Cast)
		if err != nil {
			return nil, err
		}
		add(ops...)
	}
	if op.CastOrNull != nil {
		ops, err := castAll(op.CastOrNull, transform.CastOrNull)
		if err != nil {
			return nil, err
		}
		add(ops...)
	}
	if op.Limit != nil {
		if *op.Limit < 0 {
			return nil, fmt.Errorf("limit must not be negative")
		}
		add(transform.Limit(*op.Limit))
	}
	if op.Sort != nil {
		keys := make([]transform.SortKey, len(op.Sort))
		for i, k := range op.Sort {
			if k.Descending {
				keys[i] = transform.Desc(k.Column)
			} else {
				keys[i] = transform.Asc(k.Column)
			}
		}
		add(transform.Sort(keys...))
	}
	if op.GroupBy != nil {
		aggs := make([]accumulators.Aggregation, len(op.GroupBy.Aggregations))
		for i, a := range op.GroupBy.Aggregations {
			agg, err := aggregation(a)
			if err != nil {
				return nil, err
			}
			aggs[i] = agg
		}
		add(transform.GroupBy(refs(op.GroupBy.Keys), aggs...))
	}
	if op.Distinct != nil {
		add(transform.Distinct(refs(op.Distinct)...))
	}
	if op.Stringify {
		add(transform.Stringify())
	}
	switch fields {
	case 0:
		return nil, fmt.Errorf("operation is empty")
	case 1:
		return built, nil
	}
	return nil, fmt.Errorf("operation must contain exactly one transformation, found %d", fields)
}

func refs(names []string) []flowsome.ColumnRef {
	out := make([]flowsome.ColumnRef, len(names))
	for i, name := range names {
		out[i] = flowsome.Col(name)
	}
	return out
}

// castAll produces one cast per column, in column name order
func castAll(types map[string]string, cast func(string, flowsome.ColumnType) *flowsome.DataFrameOperation) ([]*flowsome.DataFrameOperation, error) {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	ops := make([]*flowsome.DataFrameOperation, len(names))
	for i, name := range names {
		colType, err := flowsome.ParseColumnType(types[name])
		if err != nil {
			return nil, fmt.Errorf("cast %s: %w", name, err)
		}
		ops[i] = cast(name, colType)
	}
	return ops, nil
}
