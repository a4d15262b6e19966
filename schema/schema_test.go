package schema

import (
	"errors"
	"testing"

	"github.com/flowsome/flowsome"
	ferrors "github.com/flowsome/flowsome/errors"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T) flowsome.Schema {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &flowsome.Int64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", &flowsome.StringColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col3", &flowsome.Float64ColumnType{})
	require.Nil(t, err)
	return s
}

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := createTestSchema(t)
	schema2 := createTestSchema(t)
	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := createTestSchema(t)
	schema2 := CreateSchema()
	_, err := schema2.CreateColumn("col1", &flowsome.Int64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col3", &flowsome.Float64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &flowsome.StringColumnType{})
	require.Nil(t, err)
	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentTypes(t *testing.T) {
	schema1 := createTestSchema(t)
	schema2 := createTestSchema(t).Clone()
	_, err := schema2.CastColumn("col3", &flowsome.DecimalColumnType{})
	require.Nil(t, err)
	require.NotNil(t, schema1.Equals(schema2))
}

func TestCreateDuplicateColumn(t *testing.T) {
	s := createTestSchema(t)
	_, err := s.CreateColumn("col2", &flowsome.BoolColumnType{})
	var serr *ferrors.SchemaError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "col2", serr.Column)
}

func TestCloneIsIndependent(t *testing.T) {
	s := createTestSchema(t)
	clone := s.Clone()
	_, err := clone.RenameColumn("col1", "id")
	require.Nil(t, err)
	require.Equal(t, []string{"col1", "col2", "col3"}, s.ColumnNames())
	require.Equal(t, []string{"id", "col2", "col3"}, clone.ColumnNames())
}

func TestRenameColumn(t *testing.T) {
	s := createTestSchema(t)
	_, err := s.RenameColumn("col2", "name")
	require.Nil(t, err)
	col, err := s.GetColumn("name")
	require.Nil(t, err)
	require.Equal(t, 1, col.Index())
	require.False(t, s.HasColumn("col2"))

	_, err = s.RenameColumn("missing", "other")
	require.NotNil(t, err)
	_, err = s.RenameColumn("col1", "col3")
	var serr *ferrors.SchemaError
	require.True(t, errors.As(err, &serr))
}

func TestRemoveColumnShiftsIndices(t *testing.T) {
	s := createTestSchema(t)
	_, err := s.RemoveColumn("col1")
	require.Nil(t, err)
	require.Equal(t, 2, s.NumColumns())
	col, err := s.GetColumn("col3")
	require.Nil(t, err)
	require.Equal(t, 1, col.Index())
	_, err = s.RemoveColumn("col1")
	require.NotNil(t, err)
}

func TestResolve(t *testing.T) {
	s := createTestSchema(t)
	col, err := s.Resolve(flowsome.Col("col3"))
	require.Nil(t, err)
	require.Equal(t, 2, col.Index())
	col, err = s.Resolve(flowsome.ColAt(1))
	require.Nil(t, err)
	require.Equal(t, "col2", col.Name())

	_, err = s.Resolve(flowsome.ColAt(3))
	var serr *ferrors.SchemaError
	require.True(t, errors.As(err, &serr))
	_, err = s.Resolve(flowsome.Col("nope"))
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "nope", serr.Column)
}

func TestProject(t *testing.T) {
	s := createTestSchema(t)
	p, err := s.Project([]string{"col3", "col1"})
	require.Nil(t, err)
	require.Equal(t, []string{"col3", "col1"}, p.ColumnNames())
	require.Equal(t, "float64", p.ColumnTypes()[0].Name())

	_, err = s.Project([]string{"col1", "col1"})
	var serr *ferrors.SchemaError
	require.True(t, errors.As(err, &serr))
}

func TestToString(t *testing.T) {
	s := createTestSchema(t)
	require.Equal(t, "{col1: int64, col2: string, col3: float64}", s.ToString())
}
