package parquet

import (
	"sync"

	"github.com/go-sif/scify"
	errors "github.com/go-sif/scify/errors"
)

type parquetFilePartitionIterator struct {
	schema       scify.Schema
	partitions   []scify.Partition
	next         int
	hasNext      bool
	lock         sync.Mutex
	endListeners []func()
}

// Schema returns the Schema stored in the parsed file
func (pqi *parquetFilePartitionIterator) Schema() scify.Schema {
	return pqi.schema
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pqi *parquetFilePartitionIterator) OnEnd(onEnd func()) {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	if !pqi.hasNext {
		onEnd()
		return
	}
	pqi.endListeners = append(pqi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (pqi *parquetFilePartitionIterator) HasNextPartition() bool {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	return pqi.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (pqi *parquetFilePartitionIterator) NextPartition() (scify.Partition, error) {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	if !pqi.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	part := pqi.partitions[pqi.next]
	pqi.partitions[pqi.next] = nil
	pqi.next++
	if pqi.next >= len(pqi.partitions) {
		pqi.hasNext = false
		pqi.partitions = nil
		for _, l := range pqi.endListeners {
			l()
		}
		pqi.endListeners = []func(){}
	}
	return part, nil
}
