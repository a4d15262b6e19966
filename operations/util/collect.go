package util

import (
	"fmt"

	"github.com/flowsome/flowsome"
)

// collectTask passes Rows through to the executor's result, stopping once collectionLimit Rows have been seen
type collectTask struct {
	collectionLimit int64
	seen            int64
}

func (s *collectTask) RunInitialize(sctx flowsome.StageContext) error {
	s.seen = 0
	return nil
}

func (s *collectTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	if s.collectionLimit <= 0 {
		return []flowsome.OperablePartition{previous}, nil
	}
	remaining := s.collectionLimit - s.seen
	if remaining <= 0 {
		return nil, nil
	}
	next := previous.Truncate(int(remaining))
	s.seen += int64(next.GetNumRows())
	return []flowsome.OperablePartition{next}, nil
}

// IsExhausted returns true once collectionLimit Rows have been collected
func (s *collectTask) IsExhausted() bool {
	return s.collectionLimit > 0 && s.seen >= s.collectionLimit
}

// GetCollectionLimit returns the maximum number of Rows to collect, or 0 for no limit
func (s *collectTask) GetCollectionLimit() int64 {
	return s.collectionLimit
}

// Collect declares that the output of the previous operations should be gathered
// into a Table. This also signals the end of a Dataframe's tasks. A positive
// collectionLimit caps the number of Rows collected; 0 collects everything.
func Collect(collectionLimit int64) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.CollectTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if collectionLimit < 0 {
				return nil, fmt.Errorf("Collection limit must not be negative, was %d", collectionLimit)
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &collectTask{collectionLimit: collectionLimit},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
