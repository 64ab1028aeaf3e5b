package jsonl

import (
	"fmt"
	"sync"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/datasource"
	errors "github.com/go-sif/scify/errors"
	"github.com/tidwall/gjson"
)

type jsonlFilePartitionIterator struct {
	parser       *Parser
	lines        []string
	next         int
	hasNext      bool
	schema       scify.Schema
	lock         sync.Mutex
	endListeners []func()
}

// Schema returns the Schema of the parsed file
func (jsonli *jsonlFilePartitionIterator) Schema() scify.Schema {
	return jsonli.schema
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		onEnd()
		return
	}
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (scify.Partition, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := jsonli.schema.ColumnNames()
	colTypes := jsonli.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.schema)
	for part.GetNumRows() < part.GetMaxRows() && jsonli.next < len(jsonli.lines) {
		rowString := jsonli.lines[jsonli.next]
		// create a new row to place values into
		row, err := part.AppendEmptyRow()
		if err != nil {
			return nil, err
		}
		err = ParseJSONRow(colNames, colTypes, gjson.Parse(rowString), row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", jsonli.next+1, err)
		}
		jsonli.lines[jsonli.next] = ""
		jsonli.next++
	}
	if jsonli.next >= len(jsonli.lines) {
		jsonli.hasNext = false
		jsonli.lines = nil
		for _, l := range jsonli.endListeners {
			l()
		}
		jsonli.endListeners = []func(){}
	}
	return part, nil
}
