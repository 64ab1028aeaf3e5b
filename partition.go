package scify

// A Partition is a portion of a tabular dataset, consisting of multiple Rows.
// Parsers produce Partitions of at most PartitionSize rows from each file.
type Partition interface {
	ID() string                              // ID retrieves the ID of this Partition
	Schema() Schema                          // Schema retrieves the Schema of the Rows in this Partition
	GetMaxRows() int                         // GetMaxRows retrieves the maximum number of rows in this Partition
	GetNumRows() int                         // GetNumRows retrieves the number of rows in this Partition
	GetRow(rowNum int) Row                   // GetRow retrieves a specific row from this Partition
	ForEachRow(fn func(row Row) error) error // ForEachRow iterates over Rows in a Partition, in order
}

// A BuildablePartition can be built. Used in the implementation of Parsers
type BuildablePartition interface {
	Partition
	AppendEmptyRow() (Row, error) // AppendEmptyRow adds an all-nil Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
}
