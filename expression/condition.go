package expression

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/util"
	"github.com/spf13/cast"
)

// ComparisonOp is an operator usable in a condition tree leaf
type ComparisonOp string

const (
	// OpEq keeps rows whose value equals the operand
	OpEq ComparisonOp = "eq"
	// OpNe keeps rows whose value does not equal the operand
	OpNe ComparisonOp = "ne"
	// OpGt keeps rows whose value is greater than the operand
	OpGt ComparisonOp = "gt"
	// OpLt keeps rows whose value is less than the operand
	OpLt ComparisonOp = "lt"
	// OpGe keeps rows whose value is greater than or equal to the operand
	OpGe ComparisonOp = "ge"
	// OpLe keeps rows whose value is less than or equal to the operand
	OpLe ComparisonOp = "le"
	// OpIn keeps rows whose value is one of a list of operands
	OpIn ComparisonOp = "in"
)

const (
	andKey = "and"
	orKey  = "or"
)

// CompileCondition compiles a condition tree against schema. A tree is one of
//
//	{"AND": [tree, ...]}
//	{"OR": [tree, ...]}
//	{column: {op: operand}}
//
// where op is one of eq, ne, gt, lt, ge, le or in. A leaf naming several columns
// (or several ops for a column) requires all of them to hold. Null values never
// satisfy a comparison.
func CompileCondition(cond map[string]interface{}, schema flowsome.Schema) (flowsome.FilterOperation, error) {
	pred, err := compileNode(cond, schema)
	if err != nil {
		return nil, err
	}
	return func(row flowsome.Row) (bool, error) {
		return pred(row)
	}, nil
}

type conditionFunc func(row flowsome.Row) (bool, error)

func compileNode(node interface{}, schema flowsome.Schema) (conditionFunc, error) {
	cond, err := cast.ToStringMapE(node)
	if err != nil {
		return nil, fmt.Errorf("Condition must be a map, got %T", node)
	}
	if len(cond) == 0 {
		return nil, fmt.Errorf("Condition must not be empty")
	}
	if len(cond) == 1 {
		for key, value := range cond {
			switch strings.ToLower(key) {
			case andKey:
				return compileLogical(key, value, schema, true)
			case orKey:
				return compileLogical(key, value, schema, false)
			}
		}
	}
	keys := make([]string, 0, len(cond))
	for key := range cond {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	preds := make([]conditionFunc, 0, len(keys))
	for _, key := range keys {
		lk := strings.ToLower(key)
		if lk == andKey || lk == orKey {
			return nil, fmt.Errorf("Condition %s must be the only key in its map", key)
		}
		colPreds, err := compileColumn(key, cond[key], schema)
		if err != nil {
			return nil, err
		}
		preds = append(preds, colPreds...)
	}
	return allOf(preds), nil
}

func compileLogical(key string, value interface{}, schema flowsome.Schema, isAnd bool) (conditionFunc, error) {
	children, err := cast.ToSliceE(value)
	if err != nil {
		return nil, fmt.Errorf("Condition %s must contain a list of conditions, got %T", key, value)
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("Condition %s must contain at least one condition", key)
	}
	preds := make([]conditionFunc, len(children))
	for i, child := range children {
		preds[i], err = compileNode(child, schema)
		if err != nil {
			return nil, err
		}
	}
	if isAnd {
		return allOf(preds), nil
	}
	return anyOf(preds), nil
}

func allOf(preds []conditionFunc) conditionFunc {
	if len(preds) == 1 {
		return preds[0]
	}
	return func(row flowsome.Row) (bool, error) {
		for _, p := range preds {
			ok, err := p(row)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

func anyOf(preds []conditionFunc) conditionFunc {
	return func(row flowsome.Row) (bool, error) {
		for _, p := range preds {
			ok, err := p(row)
			if err != nil {
				return false, err
			} else if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

func compileColumn(colName string, value interface{}, schema flowsome.Schema) ([]conditionFunc, error) {
	col, err := schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	ops, err := cast.ToStringMapE(value)
	if err != nil || len(ops) == 0 {
		return nil, fmt.Errorf("Condition on column %s must map an operator to an operand", colName)
	}
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	preds := make([]conditionFunc, len(names))
	for i, name := range names {
		preds[i], err = compileComparison(col, ComparisonOp(strings.ToLower(name)), ops[name])
		if err != nil {
			return nil, err
		}
	}
	return preds, nil
}

func compileComparison(col flowsome.Column, op ComparisonOp, operand interface{}) (conditionFunc, error) {
	idx := col.Index()
	colType := col.Type()
	if op == OpIn {
		list, err := cast.ToSliceE(operand)
		if err != nil {
			return nil, fmt.Errorf("Operator in on column %s requires a list, got %T", col.Name(), operand)
		}
		candidates := make([]interface{}, 0, len(list))
		for _, e := range list {
			if e == nil {
				continue
			}
			coerced, err := coerceOperand(colType, e)
			if err != nil {
				return nil, fmt.Errorf("Operand %v of in on column %s: %w", e, col.Name(), err)
			}
			candidates = append(candidates, coerced)
		}
		return func(row flowsome.Row) (bool, error) {
			v, err := row.GetAt(idx)
			if err != nil || v == nil {
				return false, err
			}
			for _, c := range candidates {
				cmp, err := compareColumnValues(colType, v, c)
				if err != nil {
					return false, err
				}
				if cmp == 0 {
					return true, nil
				}
			}
			return false, nil
		}, nil
	}
	var accept func(cmp int) bool
	switch op {
	case OpEq:
		accept = func(cmp int) bool { return cmp == 0 }
	case OpNe:
		accept = func(cmp int) bool { return cmp != 0 }
	case OpGt:
		accept = func(cmp int) bool { return cmp > 0 }
	case OpLt:
		accept = func(cmp int) bool { return cmp < 0 }
	case OpGe:
		accept = func(cmp int) bool { return cmp >= 0 }
	case OpLe:
		accept = func(cmp int) bool { return cmp <= 0 }
	default:
		return nil, fmt.Errorf("Unknown operator %q on column %s", op, col.Name())
	}
	if operand == nil {
		return func(row flowsome.Row) (bool, error) { return false, nil }, nil
	}
	target, err := coerceOperand(colType, operand)
	if err != nil {
		return nil, fmt.Errorf("Operand %v of %s on column %s: %w", operand, op, col.Name(), err)
	}
	if isNested(colType) && op != OpEq && op != OpNe {
		return nil, fmt.Errorf("Operator %s is not supported on column %s of type %s", op, col.Name(), colType.Name())
	}
	return func(row flowsome.Row) (bool, error) {
		v, err := row.GetAt(idx)
		if err != nil || v == nil {
			return false, err
		}
		cmp, err := compareColumnValues(colType, v, target)
		if err != nil {
			return false, err
		}
		return accept(cmp), nil
	}, nil
}

// coerceOperand converts an operand to the type of the column it is compared with.
// Numeric columns fall back to a decimal, then a float64 operand, so that an int64
// column can be compared with 2.5.
func coerceOperand(colType flowsome.ColumnType, operand interface{}) (interface{}, error) {
	target, err := colType.Coerce(operand)
	if err == nil {
		return target, nil
	}
	switch colType.(type) {
	case *flowsome.Int64ColumnType, *flowsome.DecimalColumnType:
		if d, derr := (&flowsome.DecimalColumnType{}).Coerce(operand); derr == nil {
			return d, nil
		}
		if f, ferr := (&flowsome.Float64ColumnType{}).Coerce(operand); ferr == nil {
			return f, nil
		}
	}
	return nil, err
}

func isNested(colType flowsome.ColumnType) bool {
	switch colType.(type) {
	case *flowsome.ListColumnType, *flowsome.StructColumnType:
		return true
	}
	return false
}

// compareColumnValues compares two coerced values. Nested values only support equality,
// reporting 0 for equal values and 1 otherwise.
func compareColumnValues(colType flowsome.ColumnType, a interface{}, b interface{}) (int, error) {
	if !isNested(colType) {
		return util.CompareValues(a, b)
	}
	ak, err := util.EncodeKey([]interface{}{a})
	if err != nil {
		return 0, err
	}
	bk, err := util.EncodeKey([]interface{}{b})
	if err != nil {
		return 0, err
	}
	if bytes.Equal(ak, bk) {
		return 0, nil
	}
	return 1, nil
}
