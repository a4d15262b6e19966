package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	dbsource "github.com/flowsome/flowsome/datasource/database"
	"github.com/flowsome/flowsome/internal/sqlutil"
	"github.com/flowsome/flowsome/schema"
	ftesting "github.com/flowsome/flowsome/testing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestTable(t *testing.T) flowsome.Table {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "name", "total", "active", "tags"},
		[]flowsome.ColumnType{
			&flowsome.Int64ColumnType{},
			&flowsome.StringColumnType{},
			&flowsome.DecimalColumnType{},
			&flowsome.BoolColumnType{},
			&flowsome.ListColumnType{Elem: &flowsome.Int64ColumnType{}},
		},
	)
	require.Nil(t, err)
	table, err := datasource.CreateTableFromValues(s, [][]interface{}{
		{1, "alice", decimal.RequireFromString("10.25"), true, []interface{}{1, 2}},
		{2, nil, nil, false, nil},
	})
	require.Nil(t, err)
	return table
}

func readBack(t *testing.T, driver string, db *sql.DB, s flowsome.Schema) [][]interface{} {
	frame, err := dbsource.CreateDataFrame(&dbsource.Conf{Driver: driver, DB: db, Query: sqlutil.SelectSQL(`"out"`, s) + ` ORDER BY "id"`}, s)
	require.Nil(t, err)
	res, err := ftesting.LocalRunFrame(context.Background(), frame, nil)
	require.Nil(t, err)
	rows := ftesting.Rows(res.Table)
	for _, row := range rows {
		for i, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				row[i] = d.String()
			}
		}
	}
	return rows
}

func TestWriteModes(t *testing.T) {
	for _, driver := range []string{sqlutil.SQLiteDriver, sqlutil.DuckDBDriver} {
		dsn := filepath.Join(t.TempDir(), "out.db")
		table := createTestTable(t)
		expected := [][]interface{}{
			{int64(1), "alice", "10.25", true, []interface{}{int64(1), int64(2)}},
			{int64(2), nil, nil, false, nil},
		}

		sink, err := CreateSink(&Conf{Driver: driver, DSN: dsn, Table: "out"})
		require.Nil(t, err)
		require.Nil(t, sink.Write(context.Background(), table))
		require.Nil(t, sink.Write(context.Background(), table))

		db, err := sql.Open(driver, dsn)
		require.Nil(t, err)
		require.Len(t, readBack(t, driver, db, table.Schema()), 4, driver)
		require.Nil(t, db.Close())

		sink, err = CreateSink(&Conf{Driver: driver, DSN: dsn, Table: "out", Mode: sqlutil.ReplaceMode})
		require.Nil(t, err)
		require.Nil(t, sink.Write(context.Background(), table))
		db, err = sql.Open(driver, dsn)
		require.Nil(t, err)
		require.Equal(t, expected, readBack(t, driver, db, table.Schema()), driver)
		require.Nil(t, db.Close())

		sink, err = CreateSink(&Conf{Driver: driver, DSN: dsn, Table: "out", Mode: sqlutil.CreateMode})
		require.Nil(t, err)
		require.NotNil(t, sink.Write(context.Background(), table), driver)
	}
}

func TestFailedWriteRollsBack(t *testing.T) {
	db, err := sql.Open(sqlutil.SQLiteDriver, filepath.Join(t.TempDir(), "out.db"))
	require.Nil(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE "out" ("id" INTEGER NOT NULL)`)
	require.Nil(t, err)

	s, err := schema.CreateSchemaFromColumns([]string{"id"}, []flowsome.ColumnType{&flowsome.Int64ColumnType{}})
	require.Nil(t, err)
	table, err := datasource.CreateTableFromValues(s, [][]interface{}{{1}, {nil}})
	require.Nil(t, err)
	sink, err := CreateSink(&Conf{Driver: "sqlite", DB: db, Table: "out"})
	require.Nil(t, err)
	require.NotNil(t, sink.Write(context.Background(), table))

	var count int
	require.Nil(t, db.QueryRow(`SELECT COUNT(*) FROM "out"`).Scan(&count))
	require.Equal(t, 0, count)
}

func TestConfErrors(t *testing.T) {
	_, err := CreateSink(&Conf{Driver: "mysql", Table: "out"})
	require.NotNil(t, err)
	_, err = CreateSink(&Conf{Driver: "sqlite3"})
	require.NotNil(t, err)
	_, err = CreateSink(&Conf{Driver: "sqlite3", Table: "out", Mode: "upsert"})
	require.NotNil(t, err)
}
