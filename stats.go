package scify

import "time"

// AggregationStatistics facilitates the retrieval of statistics about an aggregation
type AggregationStatistics interface {
	// GetStartTime returns the start time of the aggregation
	GetStartTime() time.Time
	// GetRuntime returns the running time of the aggregation
	GetRuntime() time.Duration
	// GetNumFilesRead returns the number of files which were read, including skipped ones
	GetNumFilesRead() int
	// GetNumFilesSkipped returns the number of files which were read but not merged
	GetNumFilesSkipped() int
	// GetNumRowsRead returns the number of Rows which have been read so far
	GetNumRowsRead() int64
	// GetNumPartitionsRead returns the number of Partitions which have been read so far
	GetNumPartitionsRead() int64
	// GetFileRuntimes returns the time spent reading each file, in discovery order
	GetFileRuntimes() []time.Duration
}
