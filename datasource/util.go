package datasource

import (
	"fmt"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/internal/partition"
	"github.com/go-sif/scify/internal/table"
)

// CreateBuildablePartition produces a fresh, empty Partition (useful for the implementation of Parsers)
func CreateBuildablePartition(maxRows int, schema scify.Schema) scify.BuildablePartition {
	return partition.CreateBuildablePartition(maxRows, schema)
}

// CreateTable produces a fresh, empty Table for a Schema
func CreateTable(schema scify.Schema) table.BuildableTable {
	return table.CreateTable(schema)
}

// ReadAll loads every Partition from a DataSource into a single Table. If schema is nil,
// the schema of the first loaded unit is used as the reference for the rest.
// It is a minimal, fail-fast concatenation for exercising Parsers over in-memory DataSources.
// Directory aggregation, with duplicate skipping and mismatch reporting, lives in package aggregate.
func ReadAll(source scify.DataSource, parser scify.DataSourceParser, schema scify.Schema) (scify.Table, error) {
	pm, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	var result table.BuildableTable
	if schema != nil {
		result = CreateTable(schema)
	}
	for pm.HasNext() {
		pl := pm.Next()
		pi, err := pl.Load(parser, schema)
		if err != nil {
			return nil, err
		}
		if result == nil {
			schema = pi.Schema()
			result = CreateTable(schema)
		} else if err := schema.Equals(pi.Schema()); err != nil {
			return nil, fmt.Errorf("%s: %w", pl.ToString(), err)
		}
		for pi.HasNextPartition() {
			part, err := pi.NextPartition()
			if err != nil {
				return nil, err
			}
			if err := result.Append(part); err != nil {
				return nil, err
			}
		}
	}
	if result == nil {
		return nil, fmt.Errorf("DataSource produced no data")
	}
	return result, nil
}
