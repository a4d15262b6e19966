package dsv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource/file"
	"github.com/flowsome/flowsome/datasource/memory"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/schema"
	"github.com/stretchr/testify/require"
)

func createDSVTestSchema(t *testing.T) flowsome.Schema {
	schema, err := schema.CreateSchemaFromColumns(
		[]string{"id", "name", "score", "active"},
		[]flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.StringColumnType{}, &flowsome.Float64ColumnType{}, &flowsome.BoolColumnType{}},
	)
	require.Nil(t, err)
	return schema
}

func loadAll(t *testing.T, df flowsome.DataFrame) []flowsome.Row {
	pm, err := df.GetDataSource().Analyze()
	require.Nil(t, err, "Analyze err should be null")
	rows := []flowsome.Row{}
	for pm.HasNext() {
		pl := pm.Next()
		ps, err := pl.Load(df.GetParser(), df.GetSchema())
		require.Nil(t, err)
		for ps.HasNextPartition() {
			part, err := ps.NextPartition()
			require.Nil(t, err)
			part.ForEachRow(func(row flowsome.Row) error {
				rows = append(rows, row)
				return nil
			})
		}
	}
	require.False(t, pm.HasNext())
	return rows
}

func TestDSVDatasourceParser(t *testing.T) {
	data := []byte("id,name,score,active\n1,alice,1.5,true\n2,,null,false\n3,carol,2,\n")
	parser := CreateParser(&ParserConf{
		NilValue:      "null",
		PartitionSize: 2,
		HeaderLines:   1,
	})
	df := memory.CreateDataFrame([][]byte{data, data}, parser, createDSVTestSchema(t))
	rows := loadAll(t, df)
	require.Len(t, rows, 6)

	id, err := rows[0].GetInt64("id")
	require.Nil(t, err)
	require.Equal(t, int64(1), id)
	require.True(t, rows[1].IsNil("name"))
	require.True(t, rows[1].IsNil("score"))
	score, err := rows[2].GetFloat64("score")
	require.Nil(t, err)
	require.Equal(t, 2.0, score)
	require.True(t, rows[2].IsNil("active"))
	id, err = rows[5].GetInt64("id")
	require.Nil(t, err)
	require.Equal(t, int64(3), id)
}

func TestDSVParseError(t *testing.T) {
	data := []byte("1,alice,1.5,true\nnope,bob,2,false\n")
	parser := CreateParser(&ParserConf{})
	df := memory.CreateDataFrame([][]byte{data}, parser, createDSVTestSchema(t))
	pm, err := df.GetDataSource().Analyze()
	require.Nil(t, err)
	ps, err := pm.Next().Load(parser, df.GetSchema())
	require.Nil(t, err)
	_, err = ps.NextPartition()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Column id")
	require.False(t, ps.HasNextPartition())
	_, err = ps.NextPartition()
	require.ErrorAs(t, err, &errors.NoMorePartitionsError{})
}

func TestDSVFileDatasourceTabDelimited(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "a.tsv"), []byte("1\talice\t1\ttrue\n"), 0644))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte("2\tbob\t2\tfalse\n3\tcarol\t3\ttrue\n"), 0644))
	parser := CreateParser(&ParserConf{Delimiter: '\t'})
	df := file.CreateDataFrame(filepath.Join(dir, "*.tsv"), parser, createDSVTestSchema(t))
	rows := loadAll(t, df)
	require.Len(t, rows, 3)
	name, err := rows[2].GetString("name")
	require.Nil(t, err)
	require.Equal(t, "carol", name)
}

func TestDSVOnEndFiresOnce(t *testing.T) {
	parser := CreateParser(&ParserConf{PartitionSize: 1})
	calls := 0
	df := memory.CreateDataFrame(nil, parser, createDSVTestSchema(t))
	it, err := parser.Parse(bytesReader("1,a,1,true\n"), df.GetDataSource(), df.GetSchema(), func() { calls++ })
	require.Nil(t, err)
	for it.HasNextPartition() {
		_, err := it.NextPartition()
		require.Nil(t, err)
	}
	closer, ok := it.(interface{ Close() error })
	require.True(t, ok)
	require.Nil(t, closer.Close())
	require.Equal(t, 1, calls)
}
