package stats

import (
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running Flowsome pipeline
type RunStatistics struct {
	started                     bool
	startTime                   time.Time
	totalRuntime                time.Duration
	rowsProcessed               []int64
	rowsEmitted                 []int64
	partitionsProcessed         []int64
	recentPartitionRuntimes     []time.Duration // for rolling average of recent partition processing times
	recentPartitionRuntimesHead int
	numRecentPartitionRuntimes  int
	stageRuntimes               []time.Duration
	transformPhaseRuntimes      []time.Duration
	finalizePhaseRuntimes       []time.Duration

	// temp vars
	finished                  bool
	currentStageStartTime     time.Time
	currentTransformStartTime time.Time
	currentFinalizeStartTime  time.Time
	currentPartitionStartTime time.Time
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numStages int) {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rowsProcessed = make([]int64, numStages)
		rs.rowsEmitted = make([]int64, numStages)
		rs.partitionsProcessed = make([]int64, numStages)
		rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
		rs.stageRuntimes = make([]time.Duration, numStages)
		rs.transformPhaseRuntimes = make([]time.Duration, numStages)
		rs.finalizePhaseRuntimes = make([]time.Duration, numStages)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// StartStage tracks the beginning of a new Stage
func (rs *RunStatistics) StartStage() {
	rs.currentStageStartTime = time.Now()
}

// EndStage tracks the end of a Stage
func (rs *RunStatistics) EndStage(sidx int, numRowsEmitted int) {
	rs.stageRuntimes[sidx] = time.Since(rs.currentStageStartTime)
	rs.rowsEmitted[sidx] = int64(numRowsEmitted)
	rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
	rs.recentPartitionRuntimesHead = 0
	rs.numRecentPartitionRuntimes = 0
}

// StartTransform tracks the beginning of the transformation portion of a Stage
func (rs *RunStatistics) StartTransform() {
	rs.currentTransformStartTime = time.Now()
}

// EndTransform tracks the end of the transformation portion of a Stage
func (rs *RunStatistics) EndTransform(sidx int) {
	rs.transformPhaseRuntimes[sidx] = time.Since(rs.currentTransformStartTime)
}

// StartFinalize tracks the beginning of the finalization portion of a Stage
func (rs *RunStatistics) StartFinalize() {
	rs.currentFinalizeStartTime = time.Now()
}

// EndFinalize tracks the end of the finalization portion of a Stage
func (rs *RunStatistics) EndFinalize(sidx int) {
	rs.finalizePhaseRuntimes[sidx] = time.Since(rs.currentFinalizeStartTime)
}

// StartPartition tracks the beginning of the processing of a partition
func (rs *RunStatistics) StartPartition() {
	rs.currentPartitionStartTime = time.Now()
}

// EndPartition tracks the end of the processing of a partition
func (rs *RunStatistics) EndPartition(sidx int, numRows int) {
	rs.recentPartitionRuntimes[rs.recentPartitionRuntimesHead] = time.Since(rs.currentPartitionStartTime)
	rs.recentPartitionRuntimesHead = (rs.recentPartitionRuntimesHead + 1) % len(rs.recentPartitionRuntimes)
	if rs.numRecentPartitionRuntimes < statisticRollingWindows {
		rs.numRecentPartitionRuntimes++
	}
	rs.rowsProcessed[sidx] += int64(numRows)
	rs.partitionsProcessed[sidx]++
}

// GetStartTime returns the start time of the Flowsome pipeline
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the Flowsome pipeline
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumRowsProcessed() []int64 {
	return rs.rowsProcessed
}

// GetNumRowsEmitted returns the number of Rows which left each stage
func (rs *RunStatistics) GetNumRowsEmitted() []int64 {
	return rs.rowsEmitted
}

// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumPartitionsProcessed() []int64 {
	return rs.partitionsProcessed
}

// GetCurrentPartitionProcessingTime returns a rolling average of partition processing time
func (rs *RunStatistics) GetCurrentPartitionProcessingTime() time.Duration {
	if rs.numRecentPartitionRuntimes == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range rs.recentPartitionRuntimes {
		total += d
	}
	return total / time.Duration(rs.numRecentPartitionRuntimes)
}

// GetStageRuntimes returns all recorded stage runtimes
func (rs *RunStatistics) GetStageRuntimes() []time.Duration {
	return rs.stageRuntimes
}

// GetStageTransformRuntimes returns all recorded stage transform-phase runtimes
func (rs *RunStatistics) GetStageTransformRuntimes() []time.Duration {
	return rs.transformPhaseRuntimes
}

// GetStageFinalizeRuntimes returns all recorded stage finalize-phase runtimes
func (rs *RunStatistics) GetStageFinalizeRuntimes() []time.Duration {
	return rs.finalizePhaseRuntimes
}
