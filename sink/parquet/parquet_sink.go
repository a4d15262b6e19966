// Package parquet provides a Sink which writes a Table as an Apache Parquet file, using
// an in-memory DuckDB database.
package parquet

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// register the duckdb database/sql driver
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

const stagingTable = "flowsome_staging"

// Sink writes Tables to a Parquet file, replacing it if it exists
type Sink struct {
	path        string
	compression string
}

// CreateSink is a factory for Parquet Sinks. compression is a Parquet codec name
// understood by DuckDB (snappy, zstd, gzip, uncompressed). Defaults to snappy.
func CreateSink(path string, compression string) *Sink {
	if compression == "" {
		compression = "snappy"
	}
	return &Sink{path: path, compression: compression}
}

// ToString returns a string representation of this Sink
func (s *Sink) ToString() string {
	return fmt.Sprintf("Parquet sink path: %s", s.path)
}

// Write stages table in DuckDB and copies it out to the destination file
func (s *Sink) Write(ctx context.Context, table flowsome.Table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	db, err := sql.Open(sqlutil.DuckDBDriver, "")
	if err != nil {
		return err
	}
	defer db.Close()
	dialect := &sqlutil.Dialect{Driver: sqlutil.DuckDBDriver}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := dialect.WriteTable(ctx, tx, stagingTable, sqlutil.CreateMode, table); err != nil {
		return err
	}
	copySQL := fmt.Sprintf("COPY %s TO %s (FORMAT PARQUET, COMPRESSION %s)",
		sqlutil.QuoteIdentifier(stagingTable), sqlutil.QuoteLiteral(s.path), sqlutil.QuoteLiteral(s.compression))
	if _, err := tx.ExecContext(ctx, copySQL); err != nil {
		return fmt.Errorf("Unable to write %s: %w", s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("path", s.path).Int("rows", table.NumRows()).Msg("wrote parquet file")
	return nil
}
