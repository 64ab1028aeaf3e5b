// Package memory provides a DataSource backed by in-memory buffers, one per simulated file.
package memory

import (
	"github.com/go-sif/scify"
)

// DataSource is a set of buffers containing data which will be read into a Table
type DataSource struct {
	data [][]byte
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(data [][]byte) *DataSource {
	return &DataSource{data}
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (fs *DataSource) Analyze() (scify.PartitionMap, error) {
	return &PartitionMap{
		source: fs,
	}, nil
}
