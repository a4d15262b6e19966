package partition

import (
	"fmt"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() flowsome.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &flowsome.Int64ColumnType{})
	schema.CreateColumn("col2", &flowsome.StringColumnType{})
	return schema
}

func TestCreatePartitionImpl(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, 4, schema)
	require.Equal(t, 4, part.GetMaxRows())
	require.Equal(t, 0, part.GetNumRows())
	require.Nil(t, part.canInsertRowValues(make([]interface{}, 2)))
	require.Equal(t, errors.IncompatibleRowError{}, part.canInsertRowValues(make([]interface{}, 3)))
	require.NotEqual(t, part.ID(), createPartitionImpl(4, 4, schema).ID())
}

func TestAppendRowValues(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(2, 2, schema)
	require.Nil(t, part.AppendRowValues([]interface{}{int64(1), "a"}))
	require.Nil(t, part.AppendRowValues([]interface{}{int64(2), nil}))
	require.Equal(t, 2, part.GetNumRows())
	val, err := part.GetRow(1).GetInt64("col1")
	require.Nil(t, err)
	require.Equal(t, int64(2), val)
	require.True(t, part.GetRow(1).IsNil("col2"))
	require.Equal(t, errors.PartitionFullError{}, part.AppendRowValues([]interface{}{int64(3), "c"}))
}

func TestAppendEmptyRow(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, 4, schema)
	row, err := part.AppendEmptyRow()
	require.Nil(t, err)
	require.True(t, row.IsNil("col1"))
	require.Nil(t, row.Set("col1", "42"))
	val, err := part.GetRow(0).GetInt64("col1")
	require.Nil(t, err)
	require.Equal(t, int64(42), val)
}

func createFilledPartition(t *testing.T, numRows int) *partitionImpl {
	part := createPartitionImpl(numRows, numRows, createPartitionTestSchema())
	for i := 0; i < numRows; i++ {
		require.Nil(t, part.AppendRowValues([]interface{}{int64(i), fmt.Sprintf("row%d", i)}))
	}
	return part
}

func TestMapRowsDoesNotModifySource(t *testing.T) {
	part := createFilledPartition(t, 4)
	result, err := part.MapRows(func(row flowsome.Row) error {
		v, err := row.GetInt64("col1")
		if err != nil {
			return err
		}
		return row.SetInt64("col1", v*10)
	})
	require.Nil(t, err)
	require.Equal(t, 4, result.GetNumRows())
	v, err := result.GetRow(3).GetInt64("col1")
	require.Nil(t, err)
	require.Equal(t, int64(30), v)
	v, err = part.GetRow(3).GetInt64("col1")
	require.Nil(t, err)
	require.Equal(t, int64(3), v)
}

func TestMapRowsDropsErroringRows(t *testing.T) {
	part := createFilledPartition(t, 6)
	result, err := part.MapRows(func(row flowsome.Row) error {
		v, err := row.GetInt64("col1")
		if err != nil {
			return err
		}
		if v%2 == 1 {
			return fmt.Errorf("odd")
		}
		return nil
	})
	require.NotNil(t, err)
	require.Equal(t, 3, result.GetNumRows())
}

func TestFilterRows(t *testing.T) {
	part := createFilledPartition(t, 10)
	result, err := part.FilterRows(func(row flowsome.Row) (bool, error) {
		v, err := row.GetInt64("col1")
		return v >= 7, err
	})
	require.Nil(t, err)
	require.Equal(t, 3, result.GetNumRows())
	s, err := result.GetRow(0).GetString("col2")
	require.Nil(t, err)
	require.Equal(t, "row7", s)
}

func TestReshape(t *testing.T) {
	part := createFilledPartition(t, 3)
	newSchema := schema.CreateSchema()
	newSchema.CreateColumn("label", &flowsome.StringColumnType{})
	result, err := part.Reshape(newSchema, func(in flowsome.Row, out flowsome.Row) error {
		v, err := in.Get("col1")
		if err != nil {
			return err
		}
		return out.Set("label", v)
	})
	require.Nil(t, err)
	require.Equal(t, 3, result.GetNumRows())
	s, err := result.GetRow(2).GetString("label")
	require.Nil(t, err)
	require.Equal(t, "2", s)
}

func TestProjectAndTruncate(t *testing.T) {
	part := createFilledPartition(t, 5)
	projected := part.Project(schema.CreateSchema(), []int{1})
	require.Equal(t, 5, projected.GetNumRows())
	v, err := projected.GetRow(0).GetAt(0)
	require.Nil(t, err)
	require.Equal(t, "row0", v)

	require.Equal(t, 2, part.Truncate(2).GetNumRows())
	require.Equal(t, 5, part.Truncate(10).GetNumRows())
	require.Equal(t, 0, part.Truncate(0).GetNumRows())
}

func TestBuilderRollsPartitions(t *testing.T) {
	b := CreateBuilder(2, createPartitionTestSchema())
	for i := 0; i < 5; i++ {
		require.Nil(t, b.Append([]interface{}{int64(i), "x"}))
	}
	require.Equal(t, 5, b.NumRows())
	parts := b.Partitions()
	require.Len(t, parts, 3)
	require.Equal(t, 1, parts[2].GetNumRows())
	require.Len(t, b.Partitions(), 0)
}

func TestCreateTable(t *testing.T) {
	parts := []flowsome.OperablePartition{createFilledPartition(t, 3), createFilledPartition(t, 2)}
	table := CreateTable(createPartitionTestSchema(), parts)
	require.Equal(t, 5, table.NumRows())
	col, err := table.Column("col1")
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(0), int64(1), int64(2), int64(0), int64(1)}, col)
	require.Len(t, SplitTable(table, 2), 3)
}

func TestCreateTableFromValuesCoerces(t *testing.T) {
	table, err := CreateTableFromValues(createPartitionTestSchema(), [][]interface{}{
		{"1", 2},
		{3, nil},
	})
	require.Nil(t, err)
	col, err := table.Column("col2")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"2", nil}, col)

	_, err = CreateTableFromValues(createPartitionTestSchema(), [][]interface{}{{"x", "y"}, {1}})
	require.NotNil(t, err)
}
