package dataframe

import (
	"io"
	"sync"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
)

// partitionSliceIterator produces a simple iterator for Partitions stored in a slice
type partitionSliceIterator struct {
	partitions   []flowsome.OperablePartition
	next         int
	lock         sync.Mutex
	endListeners []func()
}

// CreatePartitionSliceIterator produces a new PartitionIterator for iterating over a slice of Partitions
func CreatePartitionSliceIterator(partitions []flowsome.OperablePartition) flowsome.PartitionIterator {
	return &partitionSliceIterator{
		partitions:   partitions,
		next:         0,
		endListeners: []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (psi *partitionSliceIterator) OnEnd(onEnd func()) {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	psi.endListeners = append(psi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (psi *partitionSliceIterator) HasNextPartition() bool {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	return psi.next < len(psi.partitions)
}

// NextPartition returns the next Partition if one is available, or an error
func (psi *partitionSliceIterator) NextPartition() (flowsome.Partition, error) {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	if psi.next >= len(psi.partitions) {
		for _, l := range psi.endListeners {
			l()
		}
		psi.endListeners = []func(){}
		return nil, errors.NoMorePartitionsError{}
	}
	part := psi.partitions[psi.next]
	psi.partitions[psi.next] = nil // release the reference once consumed
	psi.next++
	return part, nil
}

// partitionLoaderIterator produces Partitions from the PartitionLoaders of a PartitionMap,
// loading each one lazily
type partitionLoaderIterator struct {
	partitionMap   flowsome.PartitionMap
	partitionGroup flowsome.PartitionIterator
	parser         flowsome.DataSourceParser
	schema         flowsome.Schema
	lock           sync.Mutex
	endListeners   []func()
}

func createPartitionLoaderIterator(partitionMap flowsome.PartitionMap, parser flowsome.DataSourceParser, schema flowsome.Schema) *partitionLoaderIterator {
	return &partitionLoaderIterator{
		partitionMap:   partitionMap,
		partitionGroup: nil,
		parser:         parser,
		schema:         schema,
		endListeners:   []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pli *partitionLoaderIterator) OnEnd(onEnd func()) {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	pli.endListeners = append(pli.endListeners, onEnd)
}

// HasNextPartition is a hint. NextPartition may still return a NoMorePartitionsError.
func (pli *partitionLoaderIterator) HasNextPartition() bool {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	return (pli.partitionGroup != nil && pli.partitionGroup.HasNextPartition()) || pli.partitionMap.HasNext()
}

// NextPartition returns the next Partition if one is available, or an error
func (pli *partitionLoaderIterator) NextPartition() (flowsome.Partition, error) {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	for {
		// grab the next group of partitions from the PartitionMap if necessary
		if pli.partitionGroup == nil || !pli.partitionGroup.HasNextPartition() {
			if !pli.partitionMap.HasNext() {
				for _, l := range pli.endListeners {
					l()
				}
				pli.endListeners = []func(){}
				return nil, errors.NoMorePartitionsError{}
			}
			partGroup, err := pli.partitionMap.Next().Load(pli.parser, pli.schema)
			if err != nil {
				return nil, err
			}
			pli.partitionGroup = partGroup
			continue
		}
		part, err := pli.partitionGroup.NextPartition()
		if _, ok := err.(errors.NoMorePartitionsError); ok {
			// HasNextPartition is just a hint, so move on to the next loader
			pli.partitionGroup = nil
			continue
		} else if err != nil {
			return nil, err
		}
		return part, nil
	}
}

// Close releases the resources held by the current group of Partitions, if it has not been
// exhausted. It is used when execution stops pulling Partitions early.
func (pli *partitionLoaderIterator) Close() error {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	if pli.partitionGroup == nil {
		return nil
	}
	group := pli.partitionGroup
	pli.partitionGroup = nil
	if closer, ok := group.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
