package transform

import (
	"fmt"

	"github.com/flowsome/flowsome"
)

// limitTask passes through the first limit Rows it sees, in stream order
type limitTask struct {
	limit int64
	seen  int64
}

func (s *limitTask) RunInitialize(sctx flowsome.StageContext) error {
	s.seen = 0
	return nil
}

func (s *limitTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	remaining := s.limit - s.seen
	if remaining <= 0 {
		return nil, nil
	}
	next := previous.Truncate(int(remaining))
	s.seen += int64(next.GetNumRows())
	return []flowsome.OperablePartition{next}, nil
}

// IsExhausted returns true once limit Rows have been passed through
func (s *limitTask) IsExhausted() bool {
	return s.seen >= s.limit
}

// Limit retains only the first n Rows, in stream order. Once n Rows have been
// seen, no further data is read from the source.
func Limit(n int64) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.LimitTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if n < 0 {
				return nil, fmt.Errorf("Limit must not be negative, was %d", n)
			}
			return &flowsome.DataFrameOperationResult{
				Task:       &limitTask{limit: n},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
