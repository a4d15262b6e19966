package dataframe

import (
	"github.com/flowsome/flowsome"
)

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunInitialize for noOpTask does nothing
func (s *noOpTask) RunInitialize(sctx flowsome.StageContext) error {
	return nil
}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	return []flowsome.OperablePartition{previous}, nil
}
