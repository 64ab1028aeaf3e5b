package file

import "github.com/go-sif/scify"

// PartitionMap is an iterator producing a sequence of PartitionLoaders, one per file
type PartitionMap struct {
	files  []string
	source *DataSource
}

// HasNext returns true iff there is another PartitionLoader remaining
func (pm *PartitionMap) HasNext() bool {
	return len(pm.files) > 0
}

// Next returns the next PartitionLoader for a file
func (pm *PartitionMap) Next() scify.PartitionLoader {
	return pm.NextFile()
}

// NextFile returns the next PartitionLoader for a file, exposing file details
func (pm *PartitionMap) NextFile() *PartitionLoader {
	result := &PartitionLoader{path: pm.files[0], source: pm.source}
	pm.files = pm.files[1:]
	return result
}

// Len returns the number of files remaining
func (pm *PartitionMap) Len() int {
	return len(pm.files)
}
