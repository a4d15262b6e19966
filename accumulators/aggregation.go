package accumulators

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
)

// AggregateFunc names an aggregation function
type AggregateFunc string

const (
	// CountFunc counts non-null values, or rows when no input column is given
	CountFunc AggregateFunc = "count"
	// LenFunc counts rows
	LenFunc AggregateFunc = "len"
	// SumFunc adds numeric values
	SumFunc AggregateFunc = "sum"
	// MeanFunc averages numeric values
	MeanFunc AggregateFunc = "mean"
	// MinFunc finds the smallest value
	MinFunc AggregateFunc = "min"
	// MaxFunc finds the largest value
	MaxFunc AggregateFunc = "max"
	// FirstFunc finds the first non-null value
	FirstFunc AggregateFunc = "first"
	// LastFunc finds the last non-null value
	LastFunc AggregateFunc = "last"
	// NUniqueFunc counts distinct non-null values
	NUniqueFunc AggregateFunc = "n_unique"
	// ListFunc gathers every value, including nulls, into a list
	ListFunc AggregateFunc = "list"
)

var aggregateFuncs = []AggregateFunc{CountFunc, LenFunc, SumFunc, MeanFunc, MinFunc, MaxFunc, FirstFunc, LastFunc, NUniqueFunc, ListFunc}

// ParseAggregateFunc looks up an AggregateFunc by name, case-insensitively
func ParseAggregateFunc(name string) (AggregateFunc, error) {
	lname := strings.ToLower(strings.TrimSpace(name))
	if lname == "nunique" || lname == "count_distinct" {
		return NUniqueFunc, nil
	} else if lname == "avg" {
		return MeanFunc, nil
	}
	for _, f := range aggregateFuncs {
		if string(f) == lname {
			return f, nil
		}
	}
	return "", &errors.AggregationSpecError{Reason: fmt.Sprintf("unknown aggregation function %q", name)}
}

// Aggregation is an (aggregation function, input column, output name) triple
type Aggregation struct {
	Func   AggregateFunc
	Input  flowsome.ColumnRef // Input is unused by len, and optional for count
	Output string
}

// Agg is a convenience constructor for Aggregations over a named input column
func Agg(fn AggregateFunc, input string, output string) Aggregation {
	if input == "" {
		return Aggregation{Func: fn, Output: output}
	}
	return Aggregation{Func: fn, Input: flowsome.Col(input), Output: output}
}

// Len counts the rows of each group
func Len(output string) Aggregation {
	return Aggregation{Func: LenFunc, Output: output}
}

func (a Aggregation) hasInput() bool {
	return a.Input.IsPositional() || a.Input.Name() != ""
}

// ToString returns a string representation of this Aggregation
func (a Aggregation) ToString() string {
	if !a.hasInput() {
		return fmt.Sprintf("%s() as %s", a.Func, a.Output)
	}
	return fmt.Sprintf("%s(%s) as %s", a.Func, a.Input.ToString(), a.Output)
}

// BoundAggregation is an Aggregation resolved against a Schema
type BoundAggregation struct {
	Output     string
	OutputType flowsome.ColumnType
	Factory    flowsome.AccumulatorFactory
}

// Bind resolves this Aggregation against schema, determining its output type
func (a Aggregation) Bind(schema flowsome.Schema) (*BoundAggregation, error) {
	if a.Output == "" {
		return nil, &errors.AggregationSpecError{Reason: fmt.Sprintf("%s requires an output name", a.Func)}
	}
	fail := func(reason string, args ...interface{}) (*BoundAggregation, error) {
		return nil, &errors.AggregationSpecError{Output: a.Output, Reason: fmt.Sprintf(reason, args...)}
	}
	if a.Func == LenFunc || (a.Func == CountFunc && !a.hasInput()) {
		return &BoundAggregation{
			Output:     a.Output,
			OutputType: &flowsome.Int64ColumnType{},
			Factory:    func() flowsome.Accumulator { return &RowCount{} },
		}, nil
	}
	if !a.hasInput() {
		return fail("%s requires an input column", a.Func)
	}
	col, err := schema.Resolve(a.Input)
	if err != nil {
		return nil, err
	}
	idx := col.Index()
	colType := col.Type()
	b := &BoundAggregation{Output: a.Output, OutputType: colType}
	switch a.Func {
	case CountFunc:
		b.OutputType = &flowsome.Int64ColumnType{}
		b.Factory = func() flowsome.Accumulator { return &Count{idx: idx} }
	case SumFunc:
		switch colType.(type) {
		case *flowsome.Int64ColumnType:
			b.Factory = func() flowsome.Accumulator { return &intSum{idx: idx} }
		case *flowsome.DecimalColumnType:
			b.Factory = func() flowsome.Accumulator { return &decimalSum{idx: idx} }
		case *flowsome.Float64ColumnType:
			b.Factory = func() flowsome.Accumulator { return &floatSum{idx: idx} }
		default:
			return fail("cannot sum column %s of type %s", col.Name(), colType.Name())
		}
	case MeanFunc:
		if !flowsome.IsNumeric(colType) {
			return fail("cannot average column %s of type %s", col.Name(), colType.Name())
		}
		b.OutputType = &flowsome.Float64ColumnType{}
		b.Factory = func() flowsome.Accumulator { return &Mean{idx: idx} }
	case MinFunc, MaxFunc:
		if !isOrdered(colType) {
			return fail("cannot order column %s of type %s", col.Name(), colType.Name())
		}
		sign := -1
		if a.Func == MaxFunc {
			sign = 1
		}
		b.Factory = func() flowsome.Accumulator { return &Extremum{idx: idx, sign: sign} }
	case FirstFunc:
		b.Factory = func() flowsome.Accumulator { return &First{idx: idx} }
	case LastFunc:
		b.Factory = func() flowsome.Accumulator { return &Last{idx: idx} }
	case NUniqueFunc:
		b.OutputType = &flowsome.Int64ColumnType{}
		b.Factory = func() flowsome.Accumulator { return newNUnique(idx) }
	case ListFunc:
		b.OutputType = &flowsome.ListColumnType{Elem: colType}
		b.Factory = func() flowsome.Accumulator { return &List{idx: idx} }
	default:
		return fail("unknown aggregation function %q", a.Func)
	}
	return b, nil
}

func isOrdered(colType flowsome.ColumnType) bool {
	switch colType.(type) {
	case *flowsome.ListColumnType, *flowsome.StructColumnType:
		return false
	}
	return true
}
