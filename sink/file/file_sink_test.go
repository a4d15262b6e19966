package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	dfile "github.com/flowsome/flowsome/datasource/file"
	"github.com/flowsome/flowsome/datasource/parser/dsv"
	"github.com/flowsome/flowsome/datasource/parser/jsonl"
	"github.com/flowsome/flowsome/schema"
	dsvsink "github.com/flowsome/flowsome/sink/dsv"
	jsonlsink "github.com/flowsome/flowsome/sink/jsonl"
	ftesting "github.com/flowsome/flowsome/testing"
	"github.com/stretchr/testify/require"
)

func createTestTable(t *testing.T) flowsome.Table {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "name", "score"},
		[]flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.StringColumnType{}, &flowsome.Float64ColumnType{}},
	)
	require.Nil(t, err)
	table, err := datasource.CreateTableFromValues(s, [][]interface{}{
		{1, "alice", 1.5},
		{2, "bob", nil},
		{3, "carol", 2.25},
	})
	require.Nil(t, err)
	return table
}

func TestWriteDSV(t *testing.T) {
	table := createTestTable(t)
	for _, name := range []string{"out.csv", "out.csv.lz4"} {
		path := filepath.Join(t.TempDir(), "nested", name)
		require.Nil(t, CreateSink(path, dsvsink.CreateEncoder(nil)).Write(context.Background(), table))

		parser := dsv.CreateParser(&dsv.ParserConf{HeaderLines: 1})
		res, err := ftesting.LocalRunFrame(context.Background(), dfile.CreateDataFrame(path, parser, table.Schema()), nil)
		require.Nil(t, err)
		require.Nil(t, ftesting.EqualTables(table, res.Table), name)
	}
}

func TestWriteJSONL(t *testing.T) {
	table := createTestTable(t)
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.Nil(t, CreateSink(path, jsonlsink.CreateEncoder()).Write(context.Background(), table))
	// overwriting leaves no temporary files behind
	require.Nil(t, CreateSink(path, jsonlsink.CreateEncoder()).Write(context.Background(), table))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.Nil(t, err)
	require.Len(t, entries, 1)

	parser := jsonl.CreateParser(&jsonl.ParserConf{})
	res, err := ftesting.LocalRunFrame(context.Background(), dfile.CreateDataFrame(path, parser, table.Schema()), nil)
	require.Nil(t, err)
	require.Nil(t, ftesting.EqualTables(table, res.Table))
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "out.csv")
	require.ErrorIs(t, CreateSink(path, dsvsink.CreateEncoder(nil)).Write(ctx, createTestTable(t)), context.Canceled)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
