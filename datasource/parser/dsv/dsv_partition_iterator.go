package dsv

import (
	"sync"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/datasource"
	errors "github.com/go-sif/scify/errors"
)

type dsvFilePartitionIterator struct {
	parser       *Parser
	records      [][]string
	next         int
	hasNext      bool
	schema       scify.Schema
	lock         sync.Mutex
	endListeners []func()
}

// Schema returns the Schema of the parsed file
func (dsvi *dsvFilePartitionIterator) Schema() scify.Schema {
	return dsvi.schema
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (dsvi *dsvFilePartitionIterator) OnEnd(onEnd func()) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		onEnd()
		return
	}
	dsvi.endListeners = append(dsvi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (dsvi *dsvFilePartitionIterator) HasNextPartition() bool {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (dsvi *dsvFilePartitionIterator) NextPartition() (scify.Partition, error) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := dsvi.schema.ColumnNames()
	colTypes := dsvi.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(dsvi.parser.PartitionSize(), dsvi.schema)
	for part.GetNumRows() < part.GetMaxRows() && dsvi.next < len(dsvi.records) {
		// create a new row to place values into
		row, err := part.AppendEmptyRow()
		if err != nil {
			return nil, err
		}
		err = scanRow(dsvi.parser, dsvi.next+1, colNames, colTypes, dsvi.records[dsvi.next], row)
		if err != nil {
			return nil, err
		}
		dsvi.records[dsvi.next] = nil
		dsvi.next++
	}
	if dsvi.next >= len(dsvi.records) {
		dsvi.hasNext = false
		dsvi.records = nil
		for _, l := range dsvi.endListeners {
			l()
		}
		dsvi.endListeners = []func(){}
	}
	return part, nil
}
