package file

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
)

// DataSource is a set of files containing data which will be manipulating according to a DataFrame
type DataSource struct {
	glob   string
	schema flowsome.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(glob string, parser flowsome.DataSourceParser, schema flowsome.Schema) flowsome.DataFrame {
	source := &DataSource{glob, schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// Analyze returns a PartitionMap, describing how the source files will be divided into Partitions
func (fs *DataSource) Analyze() (flowsome.PartitionMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	sort.Strings(matches)
	return &PartitionMap{
		files:  matches,
		source: fs,
	}, nil
}
