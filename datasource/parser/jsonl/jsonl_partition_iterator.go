package jsonl

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	"github.com/flowsome/flowsome/errors"
)

type jsonlFilePartitionIterator struct {
	parser       *Parser
	scanner      *bufio.Scanner
	hasNext      bool
	lineNum      int
	source       flowsome.DataSource
	schema       flowsome.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (flowsome.Partition, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := jsonli.schema.ColumnNames()
	colTypes := jsonli.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.schema)
	// parse lines
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil
		}
		// Otherwise, grab another line from the file
		if !jsonli.scanner.Scan() {
			jsonli.end()
			if err := jsonli.scanner.Err(); err != nil {
				return nil, err
			}
			return part, nil
		}
		jsonli.lineNum++
		rowString := jsonli.scanner.Text()
		trimmed := strings.TrimSpace(rowString)
		if len(trimmed) == 0 || (jsonli.parser.conf.Comment != 0 && strings.HasPrefix(trimmed, string(jsonli.parser.conf.Comment))) {
			continue
		}
		values, err := ParseJSONRow(colNames, colTypes, rowString)
		if err != nil {
			jsonli.end()
			return nil, fmt.Errorf("Unable to parse line %d: %w", jsonli.lineNum, err)
		}
		if err = part.AppendRowValues(values); err != nil {
			jsonli.end()
			return nil, err
		}
	}
}

// Close stops this iterator early, releasing the underlying resources
func (jsonli *jsonlFilePartitionIterator) Close() error {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.end()
	return nil
}

// end marks this iterator as exhausted and notifies listeners exactly once. Callers must hold the lock.
func (jsonli *jsonlFilePartitionIterator) end() {
	jsonli.hasNext = false
	for _, l := range jsonli.endListeners {
		l()
	}
	jsonli.endListeners = []func(){}
}
