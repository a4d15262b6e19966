package database

import (
	"github.com/flowsome/flowsome"
)

// PartitionMap hands out a single PartitionLoader for a query
type PartitionMap struct {
	source *DataSource
	done   bool
}

// HasNext returns true iff the query has not been handed out yet
func (pm *PartitionMap) HasNext() bool {
	return !pm.done
}

// Next returns the PartitionLoader for the query
func (pm *PartitionMap) Next() flowsome.PartitionLoader {
	pm.done = true
	return &PartitionLoader{source: pm.source}
}
