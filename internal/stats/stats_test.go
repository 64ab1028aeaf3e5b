package stats

import (
	"testing"

	"github.com/go-sif/scify"
	"github.com/stretchr/testify/require"
)

func TestRunStatistics(t *testing.T) {
	rs := &RunStatistics{}
	var _ scify.AggregationStatistics = rs
	rs.Start()
	rs.StartFile()
	rs.AddPartition(128)
	rs.AddPartition(2)
	rs.EndFile(false)
	rs.StartFile()
	rs.AddPartition(10)
	rs.EndFile(true)
	rs.Finish()

	require.Equal(t, 2, rs.GetNumFilesRead())
	require.Equal(t, 1, rs.GetNumFilesSkipped())
	require.Equal(t, int64(130), rs.GetNumRowsRead())
	require.Equal(t, int64(2), rs.GetNumPartitionsRead())
	require.Len(t, rs.GetFileRuntimes(), 2)
	require.Equal(t, rs.GetRuntime(), rs.GetRuntime())
	require.False(t, rs.GetStartTime().IsZero())
}
