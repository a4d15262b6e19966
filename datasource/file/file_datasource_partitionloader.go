package file

import (
	"fmt"
	"os"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/compress"
	"github.com/rs/zerolog/log"
)

// PartitionLoader is capable of loading partitions of data from a file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Load is capable of loading partitions of data from a file. The file is closed
// once the returned iterator runs out of Partitions.
func (pl *PartitionLoader) Load(parser flowsome.DataSourceParser, schema flowsome.Schema) (flowsome.PartitionIterator, error) {
	if parser == nil {
		return nil, fmt.Errorf("File DataSource requires a DataSourceParser")
	}
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", pl.path).Msg("loading file")
	pi, err := parser.Parse(compress.NewReader(pl.path, f), pl.source, schema, func() {
		err := f.Close()
		if err != nil {
			log.Warn().Err(err).Str("path", pl.path).Msg("couldn't close file")
		}
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("Unable to parse %s: %w", pl.path, err)
	}
	return pi, nil
}
