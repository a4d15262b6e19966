package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunStatistics(t *testing.T) {
	rs := &RunStatistics{}
	rs.Start(2)
	rs.StartStage()
	rs.StartPartition()
	rs.EndPartition(0, 10)
	rs.StartPartition()
	rs.EndPartition(0, 5)
	rs.EndStage(0, 7)
	rs.StartStage()
	rs.StartPartition()
	rs.EndPartition(1, 7)
	rs.EndStage(1, 3)
	rs.Finish()

	require.Equal(t, []int64{15, 7}, rs.GetNumRowsProcessed())
	require.Equal(t, []int64{2, 1}, rs.GetNumPartitionsProcessed())
	require.Equal(t, []int64{7, 3}, rs.GetNumRowsEmitted())
	require.Len(t, rs.GetStageRuntimes(), 2)
	require.Equal(t, rs.GetRuntime(), rs.GetRuntime())
}

func TestRunStatisticsStartIsIdempotent(t *testing.T) {
	rs := &RunStatistics{}
	rs.Start(1)
	rs.StartPartition()
	rs.EndPartition(0, 1)
	rs.Start(3)
	require.Equal(t, []int64{1}, rs.GetNumRowsProcessed())
}
