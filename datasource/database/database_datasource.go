package database

import (
	"database/sql"
	"fmt"

	// register database/sql drivers
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	"github.com/flowsome/flowsome/internal/sqlutil"
)

// Conf configures a database DataSource
type Conf struct {
	Driver        string        // The database/sql driver: sqlite3 or duckdb
	DSN           string        // The data source name passed to sql.Open
	DB            *sql.DB       // An already-open database to use instead of Driver and DSN. It is not closed.
	Query         string        // The query producing Rows. Defaults to selecting the Schema's columns from Table.
	Table         string        // The table to read when no Query is given
	Args          []interface{} // Arguments for placeholders in Query
	PartitionSize int           // The maximum number of rows per Partition. Defaults to 128.
}

// DataSource is the result of a SQL query, whose columns are coerced to a Schema by position
type DataSource struct {
	conf   *Conf
	schema flowsome.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(conf *Conf, schema flowsome.Schema) (flowsome.DataFrame, error) {
	if conf.DB == nil {
		if _, err := sqlutil.ForDriver(conf.Driver); err != nil {
			return nil, err
		}
	}
	if conf.Query == "" {
		if conf.Table == "" {
			return nil, fmt.Errorf("Database DataSource requires either a Query or a Table")
		}
		conf.Query = sqlutil.SelectSQL(sqlutil.QuoteIdentifier(conf.Table), schema)
	}
	if conf.PartitionSize <= 0 {
		conf.PartitionSize = 128
	}
	source := &DataSource{conf: conf, schema: schema}
	return datasource.CreateDataFrame(source, nil, schema), nil
}

// Analyze returns a PartitionMap with a single PartitionLoader, which runs the query
func (ds *DataSource) Analyze() (flowsome.PartitionMap, error) {
	return &PartitionMap{source: ds}, nil
}

func (ds *DataSource) open() (*sql.DB, func() error, error) {
	if ds.conf.DB != nil {
		return ds.conf.DB, func() error { return nil }, nil
	}
	driver := ds.conf.Driver
	if driver == "sqlite" {
		driver = sqlutil.SQLiteDriver
	}
	db, err := sql.Open(driver, ds.conf.DSN)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}
