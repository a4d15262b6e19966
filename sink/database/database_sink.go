// Package database provides a Sink which stores a Table in a SQL database table.
package database

import (
	"context"
	"database/sql"
	"fmt"

	// register database/sql drivers
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

// Conf configures a database Sink
type Conf struct {
	Driver string            // The database/sql driver: sqlite3 or duckdb
	DSN    string            // The data source name passed to sql.Open
	DB     *sql.DB           // An already-open database to use instead of DSN. It is not closed.
	Table  string            // The destination table
	Mode   sqlutil.WriteMode // What happens to an existing table. Defaults to append.
}

// Sink writes Tables into a database table, within a single transaction
type Sink struct {
	conf    *Conf
	dialect *sqlutil.Dialect
}

// CreateSink is a factory for database Sinks
func CreateSink(conf *Conf) (*Sink, error) {
	dialect, err := sqlutil.ForDriver(conf.Driver)
	if err != nil {
		return nil, err
	}
	if conf.Table == "" {
		return nil, fmt.Errorf("Database sink requires a Table")
	}
	if conf.Mode, err = sqlutil.ParseWriteMode(string(conf.Mode)); err != nil {
		return nil, err
	}
	return &Sink{conf: conf, dialect: dialect}, nil
}

// ToString returns a string representation of this Sink
func (s *Sink) ToString() string {
	return fmt.Sprintf("Database sink table: %s (%s)", s.conf.Table, s.dialect.Driver)
}

// Write stores the Rows of table. Nothing is written if any Row fails.
func (s *Sink) Write(ctx context.Context, table flowsome.Table) error {
	db := s.conf.DB
	if db == nil {
		var err error
		if db, err = sql.Open(s.dialect.Driver, s.conf.DSN); err != nil {
			return err
		}
		defer db.Close()
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := s.dialect.WriteTable(ctx, tx, s.conf.Table, s.conf.Mode, table); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			log.Warn().Err(rerr).Str("table", s.conf.Table).Msg("couldn't roll back")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("table", s.conf.Table).Int("rows", table.NumRows()).Msg("wrote table")
	return nil
}
