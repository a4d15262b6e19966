package testing

import (
	"context"
	"sync"

	"github.com/flowsome/flowsome"
)

// MemorySink is a Sink which keeps every Table written to it
type MemorySink struct {
	lock   sync.Mutex
	tables []flowsome.Table
	Err    error // if non-nil, Write fails with Err
}

// Write records table
func (s *MemorySink) Write(ctx context.Context, table flowsome.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Err != nil {
		return s.Err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.tables = append(s.tables, table)
	return nil
}

// Tables returns the Tables written so far
func (s *MemorySink) Tables() []flowsome.Table {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]flowsome.Table(nil), s.tables...)
}

// ToString returns a string representation of this Sink
func (s *MemorySink) ToString() string {
	return "Memory sink"
}
