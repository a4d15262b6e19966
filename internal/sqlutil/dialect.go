package sqlutil

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/util"
	"github.com/shopspring/decimal"
)

const (
	// SQLiteDriver is the database/sql driver name of github.com/mattn/go-sqlite3
	SQLiteDriver = "sqlite3"
	// DuckDBDriver is the database/sql driver name of github.com/duckdb/duckdb-go
	DuckDBDriver = "duckdb"
)

// Dialect describes how a database represents column types and values
type Dialect struct {
	Driver string
}

// ForDriver returns the Dialect for a database/sql driver name
func ForDriver(driver string) (*Dialect, error) {
	switch strings.ToLower(driver) {
	case SQLiteDriver, "sqlite":
		return &Dialect{Driver: SQLiteDriver}, nil
	case DuckDBDriver:
		return &Dialect{Driver: DuckDBDriver}, nil
	}
	return nil, fmt.Errorf("Unsupported database driver %q", driver)
}

// QuoteIdentifier wraps an identifier in double quotes, doubling embedded quotes
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral wraps a string value in single quotes, doubling embedded quotes
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// ColumnType returns the SQL type used to store values of colType
func (d *Dialect) ColumnType(colType flowsome.ColumnType) string {
	switch colType.(type) {
	case *flowsome.BoolColumnType:
		if d.Driver == SQLiteDriver {
			return "INTEGER"
		}
		return "BOOLEAN"
	case *flowsome.Int64ColumnType:
		if d.Driver == SQLiteDriver {
			return "INTEGER"
		}
		return "BIGINT"
	case *flowsome.Float64ColumnType:
		if d.Driver == SQLiteDriver {
			return "REAL"
		}
		return "DOUBLE"
	case *flowsome.DecimalColumnType:
		if d.Driver == SQLiteDriver {
			return "TEXT"
		}
		return "DECIMAL(38,10)"
	case *flowsome.TimeColumnType:
		return "TIMESTAMP"
	case *flowsome.BytesColumnType:
		return "BLOB"
	}
	// strings, and nested values encoded as JSON
	if d.Driver == SQLiteDriver {
		return "TEXT"
	}
	return "VARCHAR"
}

// Placeholder returns the parameter placeholder for a value of colType
func (d *Dialect) Placeholder(colType flowsome.ColumnType) string {
	if _, ok := colType.(*flowsome.DecimalColumnType); ok && d.Driver == DuckDBDriver {
		return "CAST(? AS DECIMAL(38,10))"
	}
	return "?"
}

// BindValue converts a column value into a value the driver accepts as a parameter
func (d *Dialect) BindValue(colType flowsome.ColumnType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch ct := colType.(type) {
	case *flowsome.DecimalColumnType:
		return v.(decimal.Decimal).String(), nil
	case *flowsome.ListColumnType, *flowsome.StructColumnType:
		return util.ValueToJSON(ct, v)
	}
	return v, nil
}

// CreateTableSQL returns a CREATE TABLE statement for a Schema
func (d *Dialect) CreateTableSQL(table string, schema flowsome.Schema, ifNotExists bool) string {
	cols := make([]string, schema.NumColumns())
	types := schema.ColumnTypes()
	for i, name := range schema.ColumnNames() {
		cols[i] = fmt.Sprintf("%s %s", QuoteIdentifier(name), d.ColumnType(types[i]))
	}
	clause := ""
	if ifNotExists {
		clause = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE TABLE %s%s (%s)", clause, QuoteIdentifier(table), strings.Join(cols, ", "))
}

// InsertSQL returns a parameterized INSERT statement for a Schema
func (d *Dialect) InsertSQL(table string, schema flowsome.Schema) string {
	cols := make([]string, schema.NumColumns())
	params := make([]string, schema.NumColumns())
	types := schema.ColumnTypes()
	for i, name := range schema.ColumnNames() {
		cols[i] = QuoteIdentifier(name)
		params[i] = d.Placeholder(types[i])
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", QuoteIdentifier(table), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// SelectSQL returns a query selecting the columns of a Schema from a relation, which
// may be a quoted table name or a table function such as read_parquet(...)
func SelectSQL(relation string, schema flowsome.Schema) string {
	cols := make([]string, schema.NumColumns())
	for i, name := range schema.ColumnNames() {
		cols[i] = QuoteIdentifier(name)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), relation)
}
