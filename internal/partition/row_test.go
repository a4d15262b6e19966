package partition

import (
	"testing"
	"time"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createRowTestRow(t *testing.T) flowsome.Row {
	schema := schema.CreateSchema()
	_, err := schema.CreateColumn("int", &flowsome.Int64ColumnType{})
	require.Nil(t, err)
	_, err = schema.CreateColumn("float", &flowsome.Float64ColumnType{})
	require.Nil(t, err)
	_, err = schema.CreateColumn("dec", &flowsome.DecimalColumnType{})
	require.Nil(t, err)
	_, err = schema.CreateColumn("when", &flowsome.TimeColumnType{Format: "2006-01-02"})
	require.Nil(t, err)
	_, err = schema.CreateColumn("tags", &flowsome.ListColumnType{Elem: &flowsome.StringColumnType{}})
	require.Nil(t, err)
	return CreateRow(make([]interface{}, schema.NumColumns()), schema)
}

func TestGetSetInt64(t *testing.T) {
	row := createRowTestRow(t)
	_, err := row.GetInt64("int")
	require.Equal(t, errors.NilValueError{Name: "int"}, err)
	require.Nil(t, row.SetInt64("int", 12))
	v, err := row.GetInt64("int")
	require.Nil(t, err)
	require.Equal(t, int64(12), v)
	// wrong accessor for the column type
	_, err = row.GetFloat64("int")
	require.NotNil(t, err)
}

func TestSetCoercesValues(t *testing.T) {
	row := createRowTestRow(t)
	require.Nil(t, row.Set("float", "1.5"))
	require.Nil(t, row.Set("dec", "10.25"))
	require.Nil(t, row.Set("when", "2021-03-04"))
	require.Nil(t, row.Set("tags", []string{"a", "b"}))
	f, err := row.GetFloat64("float")
	require.Nil(t, err)
	require.Equal(t, 1.5, f)
	d, err := row.GetDecimal("dec")
	require.Nil(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("10.25")))
	tm, err := row.GetTime("when")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), tm)
	l, err := row.GetList("tags")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"a", "b"}, l)

	require.NotNil(t, row.Set("int", "abc"))
	require.NotNil(t, row.Set("missing", 1))
}

func TestSetNil(t *testing.T) {
	row := createRowTestRow(t)
	require.Nil(t, row.Set("int", 1))
	require.False(t, row.IsNil("int"))
	require.Nil(t, row.SetNil("int"))
	require.True(t, row.IsNil("int"))
	require.Nil(t, row.Set("int", nil))
	require.True(t, row.IsNil("int"))
}

func TestRowToString(t *testing.T) {
	row := createRowTestRow(t)
	require.Nil(t, row.Set("int", 1))
	require.Nil(t, row.Set("tags", []interface{}{"x"}))
	require.Equal(t, `{"int": 1, "float": nil, "dec": nil, "when": nil, "tags": ["x"]}`, row.ToString())
}
