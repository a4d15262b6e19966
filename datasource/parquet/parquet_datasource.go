// Package parquet provides a DataSource which reads Apache Parquet files, matched by
// a glob, through an in-memory DuckDB database.
package parquet

import (
	"fmt"
	"path/filepath"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource/database"
	"github.com/flowsome/flowsome/internal/sqlutil"
)

// CreateDataFrame is a factory for Parquet DataSources. Columns are selected from the
// files by name, in Schema order.
func CreateDataFrame(glob string, partitionSize int, schema flowsome.Schema) (flowsome.DataFrame, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", glob)
	}
	relation := fmt.Sprintf("read_parquet(%s)", sqlutil.QuoteLiteral(glob))
	return database.CreateDataFrame(&database.Conf{
		Driver:        sqlutil.DuckDBDriver,
		Query:         sqlutil.SelectSQL(relation, schema),
		PartitionSize: partitionSize,
	}, schema)
}
