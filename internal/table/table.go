// Package table provides Scify's in-memory Table, a concatenation of Partitions sharing a Schema.
package table

import (
	"fmt"

	"github.com/go-sif/scify"
)

type tableImpl struct {
	schema     scify.Schema
	partitions []scify.Partition
	numRows    int
}

// A BuildableTable can have Partitions appended to it
type BuildableTable interface {
	scify.Table
	Append(part scify.Partition) error
}

// CreateTable creates an empty Table which will hold Partitions respecting schema
func CreateTable(schema scify.Schema) BuildableTable {
	return &tableImpl{
		schema:     schema,
		partitions: []scify.Partition{},
	}
}

// Append adds a Partition to the end of this Table. Empty Partitions are discarded.
func (t *tableImpl) Append(part scify.Partition) error {
	if err := t.schema.Equals(part.Schema()); err != nil {
		return fmt.Errorf("Partition %s is incompatible with Table: %w", part.ID(), err)
	}
	if part.GetNumRows() == 0 {
		return nil
	}
	t.partitions = append(t.partitions, part)
	t.numRows += part.GetNumRows()
	return nil
}

// Schema returns the Schema shared by all Rows in this Table
func (t *tableImpl) Schema() scify.Schema {
	return t.schema
}

// NumRows returns the total number of Rows in this Table
func (t *tableImpl) NumRows() int {
	return t.numRows
}

// NumColumns returns the number of columns in this Table
func (t *tableImpl) NumColumns() int {
	return t.schema.NumColumns()
}

// Partitions returns the Partitions in this Table, in order
func (t *tableImpl) Partitions() []scify.Partition {
	return t.partitions
}

// GetRow retrieves the Row at a position in the Table
func (t *tableImpl) GetRow(rowNum int) (scify.Row, error) {
	if rowNum < 0 || rowNum >= t.numRows {
		return nil, fmt.Errorf("Row %d is out of range for Table with %d rows", rowNum, t.numRows)
	}
	for _, part := range t.partitions {
		if rowNum < part.GetNumRows() {
			return part.GetRow(rowNum), nil
		}
		rowNum -= part.GetNumRows()
	}
	return nil, fmt.Errorf("Row %d is out of range", rowNum)
}

// ForEachRow iterates over every Row in this Table, in order
func (t *tableImpl) ForEachRow(fn func(row scify.Row) error) error {
	for _, part := range t.partitions {
		if err := part.ForEachRow(fn); err != nil {
			return err
		}
	}
	return nil
}
