package partition

import (
	"log"

	"github.com/go-sif/scify"
	errors "github.com/go-sif/scify/errors"
	uuid "github.com/gofrs/uuid"
)

const defaultCapacity = 16

// partitionImpl is Scify's internal implementation of Partition
type partitionImpl struct {
	id      string
	maxRows int
	numRows int
	values  [][]interface{}
	schema  scify.Schema
}

// createPartitionImpl creates a new, empty Partition for a schema
func createPartitionImpl(maxRows int, initialCapacity int, schema scify.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	if initialCapacity > maxRows {
		initialCapacity = maxRows
	}
	return &partitionImpl{
		id:      id.String(),
		maxRows: maxRows,
		numRows: 0,
		values:  make([][]interface{}, 0, initialCapacity),
		schema:  schema,
	}
}

// CreatePartition creates a new, empty Partition for a schema
func CreatePartition(maxRows int, initialCapacity int, schema scify.Schema) scify.Partition {
	return createPartitionImpl(maxRows, initialCapacity, schema)
}

// CreateBuildablePartition creates a new Partition which Parsers can append Rows to
func CreateBuildablePartition(maxRows int, schema scify.Schema) scify.BuildablePartition {
	return createPartitionImpl(maxRows, defaultCapacity, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// Schema retrieves the Schema of this Partition
func (p *partitionImpl) Schema() scify.Schema {
	return p.schema
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return p.numRows
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) scify.Row {
	return &rowImpl{
		partID: p.id,
		values: p.values[rowNum],
		schema: p.schema,
	}
}

// ForEachRow iterates over Rows in this Partition, in order
func (p *partitionImpl) ForEachRow(fn func(row scify.Row) error) error {
	row := &rowImpl{partID: p.id, schema: p.schema}
	for i := 0; i < p.numRows; i++ {
		row.values = p.values[i]
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// AppendEmptyRow adds an all-nil Row to the end of this Partition
func (p *partitionImpl) AppendEmptyRow() (scify.Row, error) {
	if p.numRows >= p.maxRows {
		return nil, errors.PartitionFullError{}
	}
	p.values = append(p.values, make([]interface{}, p.schema.NumColumns()))
	p.numRows++
	return p.GetRow(p.numRows - 1), nil
}
