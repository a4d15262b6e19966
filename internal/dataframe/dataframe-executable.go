package dataframe

import (
	"fmt"

	"github.com/flowsome/flowsome"
	itypes "github.com/flowsome/flowsome/internal/types"
)

// GetParent returns the parent DataFrame of a DataFrame
func (df *dataFrameImpl) GetParent() flowsome.DataFrame {
	if df.parent == nil {
		return nil
	}
	return df.parent
}

// Optimize splits the DataFrame chain into stages. Each stage's execution will be blocked
// until the completion of the previous stage. Every operation is re-applied to a fresh
// copy of the chain, so that each Plan owns its Task state and the same DataFrame can be
// executed any number of times.
func (df *dataFrameImpl) Optimize(strategy itypes.Strategy) (itypes.Plan, error) {
	switch strategy {
	case itypes.EagerStrategy, itypes.SinglePassStrategy:
	default:
		return nil, fmt.Errorf("Unknown execution strategy %q", strategy)
	}
	// create a slice of frames, in order of execution, by following parent links
	frames := []*dataFrameImpl{}
	for next := df; next != nil; next = next.parent {
		frames = append([]*dataFrameImpl{next}, frames...)
	}
	// rebuild tasks
	fresh := make([]*dataFrameImpl, len(frames))
	for i, f := range frames {
		if i == 0 {
			fresh[i] = &dataFrameImpl{
				task:     &noOpTask{},
				taskType: f.taskType,
				source:   f.source,
				parser:   f.parser,
				schema:   f.schema,
			}
			continue
		}
		child, err := fresh[i-1].apply(f.op)
		if err != nil {
			return nil, err
		}
		fresh[i] = child
	}
	// split into stages
	stages := []*stageImpl{}
	current := createStage(0, fresh[0].schema)
	for i, f := range fresh {
		current.frames = append(current.frames, f)
		if i == 0 {
			continue
		}
		_, finalizing := f.task.(flowsome.FinalizingTask)
		if (strategy == itypes.EagerStrategy || finalizing) && i+1 < len(fresh) {
			current.outgoingSchema = f.schema
			stages = append(stages, current)
			current = createStage(len(stages), f.schema)
		}
	}
	current.outgoingSchema = fresh[len(fresh)-1].schema
	stages = append(stages, current)
	return &planImpl{
		stages:       stages,
		parser:       df.parser,
		source:       df.source,
		sourceSchema: fresh[0].schema,
		strategy:     strategy,
	}, nil
}

// AnalyzeSource returns a PartitionMap for the source data for this DataFrame
func (df *dataFrameImpl) AnalyzeSource() (flowsome.PartitionMap, error) {
	return df.source.Analyze()
}
