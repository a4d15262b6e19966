package database

import (
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/rs/zerolog/log"
)

// PartitionLoader runs a query, producing Partitions from its result
type PartitionLoader struct {
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Database loader query: %s", pl.source.conf.Query)
}

// Load runs the query. The result set (and the database, if it was opened here) is
// closed once the returned iterator runs out of Partitions.
func (pl *PartitionLoader) Load(parser flowsome.DataSourceParser, schema flowsome.Schema) (flowsome.PartitionIterator, error) {
	db, closeDB, err := pl.source.open()
	if err != nil {
		return nil, err
	}
	log.Debug().Str("driver", pl.source.conf.Driver).Str("query", pl.source.conf.Query).Msg("running query")
	rows, err := db.Query(pl.source.conf.Query, pl.source.conf.Args...)
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("Unable to run query: %w", err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		closeDB()
		return nil, err
	}
	if len(cols) != schema.NumColumns() {
		rows.Close()
		closeDB()
		return nil, fmt.Errorf("Query produced %d columns, but the schema has %d", len(cols), schema.NumColumns())
	}
	it := &partitionIterator{
		rows:          rows,
		hasNext:       true,
		schema:        schema,
		partitionSize: pl.source.conf.PartitionSize,
	}
	it.OnEnd(func() {
		if err := rows.Close(); err != nil {
			log.Warn().Err(err).Msg("couldn't close query result")
		}
		if err := closeDB(); err != nil {
			log.Warn().Err(err).Msg("couldn't close database")
		}
	})
	return it, nil
}
