package objectstore

import "github.com/flowsome/flowsome"

// PartitionMap is an iterator producing a sequence of PartitionLoaders
type PartitionMap struct {
	keys   []string
	source *DataSource
}

// HasNext returns true iff there is another PartitionLoader remaining
func (pm *PartitionMap) HasNext() bool {
	return len(pm.keys) > 0
}

// Next returns the next PartitionLoader for an object
func (pm *PartitionMap) Next() flowsome.PartitionLoader {
	result := &PartitionLoader{key: pm.keys[0], source: pm.source}
	pm.keys = pm.keys[1:]
	return result
}
