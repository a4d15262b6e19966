package objectstore

import (
	"context"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	"github.com/flowsome/flowsome/datasource/parser/dsv"
	"github.com/flowsome/flowsome/schema"
	dsvsink "github.com/flowsome/flowsome/sink/dsv"
	ossink "github.com/flowsome/flowsome/sink/objectstore"
	ftesting "github.com/flowsome/flowsome/testing"
	"github.com/stretchr/testify/require"
)

func createSchema(t *testing.T) flowsome.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "name"},
		[]flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.StringColumnType{}},
	)
	require.Nil(t, err)
	return s
}

func TestReadPattern(t *testing.T) {
	store := ftesting.CreateMemoryObjectStore()
	store.PageSize = 1
	store.Put("lake", "raw/2024-01/orders.csv", []byte("1,alice\n2,bob\n"))
	store.Put("lake", "raw/2024-02/orders.csv", []byte("3,carol\n"))
	store.Put("lake", "raw/2024-02/notes.txt", []byte("not a csv"))
	store.Put("other", "raw/2024-03/orders.csv", []byte("4,dan\n"))

	parser := dsv.CreateParser(&dsv.ParserConf{})
	frame, err := CreateDataFrame(store, "s3://lake/raw/2024-*/orders.csv", parser, createSchema(t))
	require.Nil(t, err)
	res, err := ftesting.LocalRunFrame(context.Background(), frame, nil)
	require.Nil(t, err)
	require.Equal(t, [][]interface{}{
		{int64(1), "alice"},
		{int64(2), "bob"},
		{int64(3), "carol"},
	}, ftesting.Rows(res.Table))
}

func TestReadPrefix(t *testing.T) {
	store := ftesting.CreateMemoryObjectStore()
	store.Put("lake", "raw/a.csv", []byte("1,alice\n"))
	store.Put("lake", "raw/b.csv", []byte("2,bob\n"))
	store.Put("lake", "rawer/c.csv", []byte("3,carol\n"))

	frame, err := CreateDataFrame(store, "s3://lake/raw", dsv.CreateParser(&dsv.ParserConf{}), createSchema(t))
	require.Nil(t, err)
	res, err := ftesting.LocalRunFrame(context.Background(), frame, nil)
	require.Nil(t, err)
	require.Equal(t, 2, res.Table.NumRows())
}

func TestRoundTripCompressed(t *testing.T) {
	store := ftesting.CreateMemoryObjectStore()
	s := createSchema(t)
	table, err := datasource.CreateTableFromValues(s, [][]interface{}{{1, "alice"}, {2, nil}})
	require.Nil(t, err)
	sink, err := ossink.CreateSink(store, "s3://lake/out/people.csv.lz4", dsvsink.CreateEncoder(&dsvsink.EncoderConf{NoHeader: true}))
	require.Nil(t, err)
	require.Nil(t, sink.Write(context.Background(), table))

	raw, ok := store.Get("lake", "out/people.csv.lz4")
	require.True(t, ok)
	require.Equal(t, []byte{0x04, 0x22, 0x4d, 0x18}, raw[:4])

	frame, err := CreateDataFrame(store, "s3://lake/out/people.csv.lz4", dsv.CreateParser(&dsv.ParserConf{}), s)
	require.Nil(t, err)
	res, err := ftesting.LocalRunFrame(context.Background(), frame, nil)
	require.Nil(t, err)
	require.Nil(t, ftesting.EqualTables(table, res.Table))
}

func TestNoMatches(t *testing.T) {
	store := ftesting.CreateMemoryObjectStore()
	frame, err := CreateDataFrame(store, "s3://lake/missing/*.csv", dsv.CreateParser(&dsv.ParserConf{}), createSchema(t))
	require.Nil(t, err)
	_, err = ftesting.LocalRunFrame(context.Background(), frame, nil)
	require.NotNil(t, err)

	_, err = CreateDataFrame(store, "/local/path.csv", dsv.CreateParser(&dsv.ParserConf{}), createSchema(t))
	require.NotNil(t, err)
}
