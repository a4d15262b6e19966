package sqlutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/flowsome/flowsome"
	"github.com/shopspring/decimal"
)

// WriteMode determines what happens to an existing table when a Table is written
type WriteMode string

const (
	// AppendMode creates the table if it does not exist, and appends Rows to it
	AppendMode WriteMode = "append"
	// ReplaceMode drops and re-creates the table
	ReplaceMode WriteMode = "replace"
	// CreateMode creates the table, failing if it already exists
	CreateMode WriteMode = "create"
)

// ParseWriteMode parses the configuration name of a WriteMode. The empty string is AppendMode.
func ParseWriteMode(name string) (WriteMode, error) {
	switch mode := WriteMode(name); mode {
	case "":
		return AppendMode, nil
	case AppendMode, ReplaceMode, CreateMode:
		return mode, nil
	}
	return "", fmt.Errorf("Unknown write mode %q", name)
}

// WriteTable stores the Rows of a Table in a database table, within tx
func (d *Dialect) WriteTable(ctx context.Context, tx *sql.Tx, name string, mode WriteMode, table flowsome.Table) error {
	schema := table.Schema()
	if mode == ReplaceMode {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteIdentifier(name))); err != nil {
			return fmt.Errorf("Unable to drop table %s: %w", name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, d.CreateTableSQL(name, schema, mode == AppendMode)); err != nil {
		return fmt.Errorf("Unable to create table %s: %w", name, err)
	}
	stmt, err := tx.PrepareContext(ctx, d.InsertSQL(name, schema))
	if err != nil {
		return fmt.Errorf("Unable to prepare insert into %s: %w", name, err)
	}
	defer stmt.Close()
	types := schema.ColumnTypes()
	args := make([]interface{}, len(types))
	for i := 0; i < table.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		values := table.GetRow(i).Values()
		for j, v := range values {
			if args[j], err = d.BindValue(types[j], v); err != nil {
				return fmt.Errorf("Unable to store column %s of row %d: %w", schema.ColumnNames()[j], i, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("Unable to insert row %d into %s: %w", i, name, err)
		}
	}
	return nil
}

// ScanValue coerces a value scanned from a database into the canonical representation of colType
func ScanValue(colType flowsome.ColumnType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		if _, isBytes := colType.(*flowsome.BytesColumnType); isBytes {
			return append([]byte(nil), b...), nil
		}
		v = string(b)
	}
	if d, ok := v.(duckdb.Decimal); ok {
		v = decimal.NewFromBigInt(d.Value, -int32(d.Scale))
	}
	return colType.Coerce(v)
}
