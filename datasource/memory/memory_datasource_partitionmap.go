package memory

import "github.com/flowsome/flowsome"

// PartitionMap is an iterator producing a sequence of PartitionLoaders
type PartitionMap struct {
	idx    int
	source *DataSource
}

// HasNext returns true iff there is another PartitionLoader remaining
func (pm *PartitionMap) HasNext() bool {
	return pm.idx < len(pm.source.data)
}

// Next returns the next PartitionLoader for a buffer
func (pm *PartitionMap) Next() flowsome.PartitionLoader {
	result := &PartitionLoader{idx: pm.idx, source: pm.source}
	pm.idx++
	return result
}

// tablePartitionMap produces a single PartitionLoader for a Table
type tablePartitionMap struct {
	done   bool
	source *TableDataSource
}

// HasNext returns true iff the Table has not been handed out yet
func (pm *tablePartitionMap) HasNext() bool {
	return !pm.done
}

// Next returns the PartitionLoader for the Table
func (pm *tablePartitionMap) Next() flowsome.PartitionLoader {
	pm.done = true
	return &tablePartitionLoader{source: pm.source}
}
