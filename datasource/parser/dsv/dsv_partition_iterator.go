package dsv

import (
	"encoding/csv"
	"io"
	"sync"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	"github.com/flowsome/flowsome/errors"
)

type dsvFilePartitionIterator struct {
	parser       *Parser
	reader       *csv.Reader
	hasNext      bool
	source       flowsome.DataSource
	schema       flowsome.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (dsvi *dsvFilePartitionIterator) OnEnd(onEnd func()) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	dsvi.endListeners = append(dsvi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (dsvi *dsvFilePartitionIterator) HasNextPartition() bool {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (dsvi *dsvFilePartitionIterator) NextPartition() (flowsome.Partition, error) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := dsvi.schema.ColumnNames()
	colTypes := dsvi.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(dsvi.parser.PartitionSize(), dsvi.schema)
	// parse lines
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil
		}
		// Otherwise, grab another line from the file
		rowStrings, err := dsvi.reader.Read()
		if err == io.EOF {
			dsvi.end()
			return part, nil
		} else if err != nil {
			dsvi.end()
			return nil, err
		}
		values, err := scanRow(dsvi.parser.conf, colNames, colTypes, rowStrings)
		if err != nil {
			line, _ := dsvi.reader.FieldPos(0)
			dsvi.end()
			return nil, &csv.ParseError{StartLine: line, Line: line, Err: err}
		}
		if err = part.AppendRowValues(values); err != nil {
			dsvi.end()
			return nil, err
		}
	}
}

// Close stops this iterator early, releasing the underlying resources
func (dsvi *dsvFilePartitionIterator) Close() error {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	dsvi.end()
	return nil
}

// end marks this iterator as exhausted and notifies listeners exactly once. Callers must hold the lock.
func (dsvi *dsvFilePartitionIterator) end() {
	dsvi.hasNext = false
	for _, l := range dsvi.endListeners {
		l()
	}
	dsvi.endListeners = []func(){}
}
