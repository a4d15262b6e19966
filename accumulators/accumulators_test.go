package accumulators

import (
	"math"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/partition"
	"github.com/flowsome/flowsome/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T) flowsome.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"name", "qty", "price", "ratio", "tags"},
		[]flowsome.ColumnType{
			&flowsome.StringColumnType{},
			&flowsome.Int64ColumnType{},
			&flowsome.DecimalColumnType{},
			&flowsome.Float64ColumnType{},
			&flowsome.ListColumnType{Elem: &flowsome.StringColumnType{}},
		},
	)
	require.Nil(t, err)
	return s
}

func createTestRows(t *testing.T, s flowsome.Schema) []flowsome.Row {
	values := [][]interface{}{
		{"a", int64(2), decimal.RequireFromString("1.10"), 0.5, nil},
		{"b", nil, decimal.RequireFromString("2.20"), nil, []interface{}{"x"}},
		{"a", int64(5), nil, 1.5, nil},
		{nil, int64(-1), decimal.RequireFromString("0.70"), 2.5, nil},
	}
	rows := make([]flowsome.Row, len(values))
	for i, v := range values {
		rows[i] = partition.CreateRow(v, s)
	}
	return rows
}

func aggregate(t *testing.T, agg Aggregation, s flowsome.Schema, rows []flowsome.Row) (interface{}, flowsome.ColumnType) {
	b, err := agg.Bind(s)
	require.Nil(t, err)
	acc := b.Factory()
	for _, row := range rows {
		require.Nil(t, acc.Accumulate(row))
	}
	return acc.Value(), b.OutputType
}

func TestAggregations(t *testing.T) {
	s := createTestSchema(t)
	rows := createTestRows(t, s)
	cases := []struct {
		agg      Aggregation
		expected interface{}
		outType  string
	}{
		{Agg(CountFunc, "qty", "n"), int64(3), "int64"},
		{Agg(CountFunc, "", "n"), int64(4), "int64"},
		{Len("n"), int64(4), "int64"},
		{Agg(SumFunc, "qty", "s"), int64(6), "int64"},
		{Agg(SumFunc, "ratio", "s"), 4.5, "float64"},
		{Agg(MeanFunc, "qty", "m"), 2.0, "float64"},
		{Agg(MinFunc, "qty", "m"), int64(-1), "int64"},
		{Agg(MaxFunc, "name", "m"), "b", "string"},
		{Agg(FirstFunc, "price", "f"), decimal.RequireFromString("1.10"), "decimal"},
		{Agg(LastFunc, "ratio", "l"), 2.5, "float64"},
		{Agg(NUniqueFunc, "name", "u"), int64(2), "int64"},
		{Agg(ListFunc, "qty", "l"), []interface{}{int64(2), nil, int64(5), int64(-1)}, "list<int64>"},
	}
	for _, c := range cases {
		value, outType := aggregate(t, c.agg, s, rows)
		require.Equal(t, c.expected, value, c.agg.ToString())
		require.Equal(t, c.outType, outType.Name(), c.agg.ToString())
	}
	sum, _ := aggregate(t, Agg(SumFunc, "price", "s"), s, rows)
	require.True(t, decimal.RequireFromString("4.00").Equal(sum.(decimal.Decimal)))
}

func TestAggregationsOverNoValues(t *testing.T) {
	s := createTestSchema(t)
	sum, _ := aggregate(t, Agg(SumFunc, "qty", "s"), s, nil)
	require.Equal(t, int64(0), sum)
	mean, _ := aggregate(t, Agg(MeanFunc, "qty", "m"), s, nil)
	require.Nil(t, mean)
	min, _ := aggregate(t, Agg(MinFunc, "qty", "m"), s, nil)
	require.Nil(t, min)
	count, _ := aggregate(t, Agg(CountFunc, "qty", "c"), s, nil)
	require.Equal(t, int64(0), count)
	list, _ := aggregate(t, Agg(ListFunc, "qty", "l"), s, nil)
	require.Equal(t, []interface{}{}, list)
}

func TestIntSumOverflow(t *testing.T) {
	s := createTestSchema(t)
	b, err := Agg(SumFunc, "qty", "total").Bind(s)
	require.Nil(t, err)
	for _, values := range [][]int64{{math.MaxInt64, 1}, {math.MinInt64, -1}} {
		acc := b.Factory()
		require.Nil(t, acc.Accumulate(partition.CreateRow([]interface{}{"a", values[0], nil, nil, nil}, s)))
		require.NotNil(t, acc.Accumulate(partition.CreateRow([]interface{}{"a", values[1], nil, nil, nil}, s)))
		require.Equal(t, values[0], acc.Value())
	}

	acc := b.Factory()
	for _, v := range []int64{math.MaxInt64, -5, 3} {
		require.Nil(t, acc.Accumulate(partition.CreateRow([]interface{}{"a", v, nil, nil, nil}, s)))
	}
	require.Equal(t, int64(math.MaxInt64-2), acc.Value())
}

func TestBindErrors(t *testing.T) {
	s := createTestSchema(t)
	var aggErr *errors.AggregationSpecError
	_, err := Agg(SumFunc, "name", "s").Bind(s)
	require.ErrorAs(t, err, &aggErr)
	_, err = Agg(MinFunc, "tags", "m").Bind(s)
	require.ErrorAs(t, err, &aggErr)
	_, err = Agg(MeanFunc, "", "m").Bind(s)
	require.ErrorAs(t, err, &aggErr)
	_, err = Agg(SumFunc, "qty", "").Bind(s)
	require.ErrorAs(t, err, &aggErr)
	var schemaErr *errors.SchemaError
	_, err = Agg(SumFunc, "missing", "s").Bind(s)
	require.ErrorAs(t, err, &schemaErr)
}

func TestParseAggregateFunc(t *testing.T) {
	f, err := ParseAggregateFunc(" SUM ")
	require.Nil(t, err)
	require.Equal(t, SumFunc, f)
	f, err = ParseAggregateFunc("avg")
	require.Nil(t, err)
	require.Equal(t, MeanFunc, f)
	_, err = ParseAggregateFunc("median")
	require.NotNil(t, err)
}

func TestComposed(t *testing.T) {
	s := createTestSchema(t)
	rows := createTestRows(t, s)
	count, err := Agg(CountFunc, "name", "c").Bind(s)
	require.Nil(t, err)
	max, err := Agg(MaxFunc, "qty", "m").Bind(s)
	require.Nil(t, err)
	acc := Compose(count.Factory, max.Factory)()
	for _, row := range rows {
		require.Nil(t, acc.Accumulate(row))
	}
	require.Equal(t, []interface{}{int64(3), int64(5)}, acc.Value())
	require.Len(t, acc.(*Composed).GetResults(), 2)
}
