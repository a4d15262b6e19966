package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/sqlutil"
)

type partitionIterator struct {
	rows          *sql.Rows
	hasNext       bool
	schema        flowsome.Schema
	partitionSize int
	lock          sync.Mutex
	endListeners  []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (it *partitionIterator) OnEnd(onEnd func()) {
	it.lock.Lock()
	defer it.lock.Unlock()
	it.endListeners = append(it.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (it *partitionIterator) HasNextPartition() bool {
	it.lock.Lock()
	defer it.lock.Unlock()
	return it.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (it *partitionIterator) NextPartition() (flowsome.Partition, error) {
	it.lock.Lock()
	defer it.lock.Unlock()
	if !it.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := it.schema.ColumnNames()
	colTypes := it.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(it.partitionSize, it.schema)
	scanned := make([]interface{}, len(colTypes))
	dest := make([]interface{}, len(colTypes))
	for i := range scanned {
		dest[i] = &scanned[i]
	}
	for part.GetNumRows() < part.GetMaxRows() {
		if !it.rows.Next() {
			err := it.rows.Err()
			it.end()
			return part, err
		}
		if err := it.rows.Scan(dest...); err != nil {
			it.end()
			return nil, err
		}
		values := make([]interface{}, len(colTypes))
		for i, v := range scanned {
			cv, err := sqlutil.ScanValue(colTypes[i], v)
			if err != nil {
				it.end()
				return nil, fmt.Errorf("Column %s could not be read as %s. Was: %#v: %w", colNames[i], colTypes[i].Name(), v, err)
			}
			values[i] = cv
		}
		if err := part.AppendRowValues(values); err != nil {
			it.end()
			return nil, err
		}
	}
	return part, nil
}

// Close stops this iterator early, releasing the underlying resources
func (it *partitionIterator) Close() error {
	it.lock.Lock()
	defer it.lock.Unlock()
	it.end()
	return nil
}

// end marks this iterator as exhausted and notifies listeners exactly once. Callers must hold the lock.
func (it *partitionIterator) end() {
	it.hasNext = false
	for _, l := range it.endListeners {
		l()
	}
	it.endListeners = []func(){}
}
