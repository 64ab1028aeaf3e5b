package scify

import "io"

// PartitionLoader is a description of how to load the Partitions of a single unit
// (usually a file) of a DataSource.
type PartitionLoader interface {
	ToString() string                                                       // for logging
	Load(parser DataSourceParser, schema Schema) (PartitionIterator, error) // how to actually load data. schema may be nil, in which case the parser infers one.
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), PartitionLoaders are produced in discovery order.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be read into a Table.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
}

// A DataSourceParser is capable of parsing raw data from a PartitionLoader to produce Partitions
type DataSourceParser interface {
	PartitionSize() int   // returns the maximum size of Partitions produced by this DataSourceParser, in rows
	Extensions() []string // returns the file extensions (including the leading dot) this DataSourceParser understands
	Parse(r io.Reader, schema Schema, onIteratorEnd func()) (PartitionIterator, error)
}
