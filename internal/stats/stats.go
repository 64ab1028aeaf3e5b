package stats

import (
	"time"
)

// RunStatistics contains statistics about a running aggregation
type RunStatistics struct {
	started               bool
	finished              bool
	startTime             time.Time
	totalRuntime          time.Duration
	filesRead             int
	filesSkipped          int
	rowsRead              int64
	partitionsRead        int64
	fileRuntimes          []time.Duration
	currentFileStart      time.Time
	currentFileRows       int64
	currentFilePartitions int64
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.fileRuntimes = []time.Duration{}
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// StartFile tracks the beginning of the reading of a file
func (rs *RunStatistics) StartFile() {
	rs.currentFileStart = time.Now()
	rs.currentFileRows = 0
	rs.currentFilePartitions = 0
}

// AddPartition tracks a Partition read from the current file
func (rs *RunStatistics) AddPartition(numRows int) {
	rs.currentFileRows += int64(numRows)
	rs.currentFilePartitions++
}

// EndFile tracks the end of the reading of a file. Rows from skipped files are not counted.
func (rs *RunStatistics) EndFile(skipped bool) {
	rs.fileRuntimes = append(rs.fileRuntimes, time.Since(rs.currentFileStart))
	rs.filesRead++
	if skipped {
		rs.filesSkipped++
		return
	}
	rs.rowsRead += rs.currentFileRows
	rs.partitionsRead += rs.currentFilePartitions
}

// GetStartTime returns the start time of the aggregation
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the aggregation
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumFilesRead returns the number of files which were read, including skipped ones
func (rs *RunStatistics) GetNumFilesRead() int {
	return rs.filesRead
}

// GetNumFilesSkipped returns the number of files which were read but not merged
func (rs *RunStatistics) GetNumFilesSkipped() int {
	return rs.filesSkipped
}

// GetNumRowsRead returns the number of Rows which have been merged so far
func (rs *RunStatistics) GetNumRowsRead() int64 {
	return rs.rowsRead
}

// GetNumPartitionsRead returns the number of Partitions which have been merged so far
func (rs *RunStatistics) GetNumPartitionsRead() int64 {
	return rs.partitionsRead
}

// GetFileRuntimes returns the time spent reading each file, in discovery order
func (rs *RunStatistics) GetFileRuntimes() []time.Duration {
	return rs.fileRuntimes
}
