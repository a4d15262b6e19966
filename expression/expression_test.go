package expression

import (
	"math"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/partition"
	"github.com/flowsome/flowsome/schema"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T) flowsome.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"name", "age", "score", "first name", "tags"},
		[]flowsome.ColumnType{
			&flowsome.StringColumnType{},
			&flowsome.Int64ColumnType{},
			&flowsome.DecimalColumnType{},
			&flowsome.StringColumnType{},
			&flowsome.ListColumnType{Elem: &flowsome.StringColumnType{}},
		},
	)
	require.Nil(t, err)
	return s
}

func createTestRow(t *testing.T, s flowsome.Schema, values ...interface{}) flowsome.Row {
	row := partition.CreateRow(make([]interface{}, s.NumColumns()), s)
	for i, v := range values {
		require.Nil(t, row.SetAt(i, v))
	}
	return row
}

func TestPredicate(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompilePredicate(`age >= 30 && name != "bob"`, s)
	require.Nil(t, err)
	keep, err := pred(createTestRow(t, s, "alice", 31))
	require.Nil(t, err)
	require.True(t, keep)
	keep, err = pred(createTestRow(t, s, "bob", 40))
	require.Nil(t, err)
	require.False(t, keep)
	keep, err = pred(createTestRow(t, s, "carol", 12))
	require.Nil(t, err)
	require.False(t, keep)
}

func TestPredicateNullIsFalse(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompilePredicate(`age > 30`, s)
	require.Nil(t, err)
	keep, err := pred(createTestRow(t, s, "alice", nil))
	require.Nil(t, err)
	require.False(t, keep)
}

func TestPredicateDecimalAndEnv(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompilePredicate(`score > 1.5 && $env["first name"] == "Al"`, s)
	require.Nil(t, err)
	keep, err := pred(createTestRow(t, s, "alice", 31, "2.25", "Al"))
	require.Nil(t, err)
	require.True(t, keep)
	keep, err = pred(createTestRow(t, s, "alice", 31, "1.25", "Al"))
	require.Nil(t, err)
	require.False(t, keep)
}

func TestPredicateBuiltins(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompilePredicate(`len(tags) > 1 && upper(name) == "ALICE"`, s)
	require.Nil(t, err)
	keep, err := pred(createTestRow(t, s, "alice", 31, nil, nil, []interface{}{"a", "b"}))
	require.Nil(t, err)
	require.True(t, keep)
}

func TestPredicateUnknownColumn(t *testing.T) {
	s := createTestSchema(t)
	_, err := CompilePredicate(`height > 3`, s)
	require.NotNil(t, err)
	_, err = CompilePredicate(`$env["last name"] == "x"`, s)
	var schemaErr *errors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "last name", schemaErr.Column)
}

func TestPredicateNotBoolean(t *testing.T) {
	s := createTestSchema(t)
	_, err := CompilePredicate(`"a" + "b"`, s)
	require.NotNil(t, err)
	_, err = CompilePredicate(`age >`, s)
	require.NotNil(t, err)
}

func TestJoinPredicate(t *testing.T) {
	ls, err := schema.CreateSchemaFromColumns([]string{"id", "lo"}, []flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.Int64ColumnType{}})
	require.Nil(t, err)
	rs, err := schema.CreateSchemaFromColumns([]string{"id", "v"}, []flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.Int64ColumnType{}})
	require.Nil(t, err)
	pred, err := CompileJoinPredicate(`left.id == right.id && right.v >= left.lo`, ls, rs)
	require.Nil(t, err)
	match, err := pred(createTestRow(t, ls, 1, 5), createTestRow(t, rs, 1, 7))
	require.Nil(t, err)
	require.True(t, match)
	match, err = pred(createTestRow(t, ls, 1, 5), createTestRow(t, rs, 1, 2))
	require.Nil(t, err)
	require.False(t, match)
	match, err = pred(createTestRow(t, ls, 1, nil), createTestRow(t, rs, 1, 2))
	require.Nil(t, err)
	require.False(t, match)
	_, err = CompileJoinPredicate(`left.id == right.missing`, ls, rs)
	require.NotNil(t, err)
	_, err = CompileJoinPredicate(`true`, ls, rs)
	require.NotNil(t, err)
}

func TestCondition(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompileCondition(map[string]interface{}{
		"AND": []interface{}{
			map[string]interface{}{"age": map[string]interface{}{"GE": "18"}},
			map[string]interface{}{"or": []interface{}{
				map[string]interface{}{"name": map[string]interface{}{"in": []interface{}{"alice", "bob"}}},
				map[string]interface{}{"score": map[string]interface{}{"gt": 9.5}},
			}},
		},
	}, s)
	require.Nil(t, err)
	cases := []struct {
		values []interface{}
		keep   bool
	}{
		{[]interface{}{"alice", 20}, true},
		{[]interface{}{"carol", 20, "10"}, true},
		{[]interface{}{"carol", 20, "1"}, false},
		{[]interface{}{"bob", 12}, false},
		{[]interface{}{"bob", nil}, false},
	}
	for _, c := range cases {
		keep, err := pred(createTestRow(t, s, c.values...))
		require.Nil(t, err)
		require.Equal(t, c.keep, keep, "values %v", c.values)
	}
}

func TestConditionImplicitAnd(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompileCondition(map[string]interface{}{
		"age":  map[string]interface{}{"gt": 10, "lt": 20},
		"name": map[string]interface{}{"ne": "bob"},
	}, s)
	require.Nil(t, err)
	keep, err := pred(createTestRow(t, s, "alice", 15))
	require.Nil(t, err)
	require.True(t, keep)
	keep, err = pred(createTestRow(t, s, "alice", 25))
	require.Nil(t, err)
	require.False(t, keep)
	keep, err = pred(createTestRow(t, s, nil, 15))
	require.Nil(t, err)
	require.False(t, keep)
}

func TestConditionNested(t *testing.T) {
	s := createTestSchema(t)
	pred, err := CompileCondition(map[string]interface{}{
		"tags": map[string]interface{}{"eq": []interface{}{"a", "b"}},
	}, s)
	require.Nil(t, err)
	keep, err := pred(createTestRow(t, s, nil, nil, nil, nil, []interface{}{"a", "b"}))
	require.Nil(t, err)
	require.True(t, keep)
	_, err = CompileCondition(map[string]interface{}{
		"tags": map[string]interface{}{"gt": []interface{}{"a"}},
	}, s)
	require.NotNil(t, err)
}

func TestConditionNumericOperands(t *testing.T) {
	s := createTestSchema(t)
	cases := []struct {
		cond   map[string]interface{}
		values []interface{}
		keep   bool
	}{
		{map[string]interface{}{"age": map[string]interface{}{"gt": 2.5}}, []interface{}{"a", 3}, true},
		{map[string]interface{}{"age": map[string]interface{}{"gt": 2.5}}, []interface{}{"a", 2}, false},
		{map[string]interface{}{"age": map[string]interface{}{"le": "2.5"}}, []interface{}{"a", 2}, true},
		{map[string]interface{}{"age": map[string]interface{}{"eq": 2.5}}, []interface{}{"a", 2}, false},
		{map[string]interface{}{"age": map[string]interface{}{"ne": 2.5}}, []interface{}{"a", 2}, true},
		{map[string]interface{}{"age": map[string]interface{}{"in": []interface{}{2.5, 3}}}, []interface{}{"a", 3}, true},
		{map[string]interface{}{"age": map[string]interface{}{"lt": 1e19}}, []interface{}{"a", int64(math.MaxInt64)}, true},
		{map[string]interface{}{"score": map[string]interface{}{"gt": math.Inf(-1)}}, []interface{}{"a", nil, "-1e30"}, true},
		{map[string]interface{}{"score": map[string]interface{}{"lt": math.NaN()}}, []interface{}{"a", nil, "12.5"}, true},
	}
	for _, c := range cases {
		pred, err := CompileCondition(c.cond, s)
		require.Nil(t, err, "condition %v", c.cond)
		keep, err := pred(createTestRow(t, s, c.values...))
		require.Nil(t, err)
		require.Equal(t, c.keep, keep, "condition %v on %v", c.cond, c.values)
	}
}

func TestConditionErrors(t *testing.T) {
	s := createTestSchema(t)
	bad := []map[string]interface{}{
		{},
		{"AND": []interface{}{}},
		{"OR": "nope"},
		{"missing": map[string]interface{}{"eq": 1}},
		{"age": map[string]interface{}{"like": 1}},
		{"age": map[string]interface{}{"in": 1}},
		{"age": map[string]interface{}{"eq": "not a number"}},
		{"age": 3},
	}
	for _, cond := range bad {
		_, err := CompileCondition(cond, s)
		require.NotNil(t, err, "condition %v", cond)
	}
}
