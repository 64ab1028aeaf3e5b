package schema

import (
	"fmt"
	"reflect"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/scify"
	errors "github.com/go-sif/scify/errors"
)

// Column describes the position and type of a field in a Row.
type column struct {
	idx     int
	colType scify.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() scify.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() scify.ColumnType {
	return c.colType
}

// Schema is an ordered mapping from column names to
// column types. It allows one to obtain columns by name,
// define new columns and compare Schemas with one another.
type schema struct {
	schema map[string]scify.Column
	names  []string
}

// CreateSchema is a factory for Schemas
func CreateSchema() scify.Schema {
	return &schema{
		schema: make(map[string]scify.Column),
		names:  []string{},
	}
}

// Equals returns nil iff this and another Schema are equivalent, or an error describing the first difference
func (s *schema) Equals(otherSchema scify.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns (%d vs %d)", s.NumColumns(), otherSchema.NumColumns())
	}
	otherNames := otherSchema.ColumnNames()
	otherTypes := otherSchema.ColumnTypes()
	for i, name := range s.names {
		if name != otherNames[i] {
			return fmt.Errorf("Column %d is named %s, expected %s", i, otherNames[i], name)
		}
		colType := s.schema[name].Type()
		if reflect.TypeOf(colType) != reflect.TypeOf(otherTypes[i]) {
			return fmt.Errorf("Column %s has type %s, expected %s", name, otherTypes[i].Name(), colType.Name())
		}
	}
	return nil
}

// Fingerprint returns a hash of the ordered column names and types in this Schema
func (s *schema) Fingerprint() uint64 {
	hasher := xxhash.New()
	for _, name := range s.names {
		hasher.WriteString(name)
		hasher.Write([]byte{0})
		hasher.WriteString(s.schema[name].Type().Name())
		hasher.Write([]byte{0})
	}
	return hasher.Sum64()
}

// Clone returns a copy of this Schema
func (s *schema) Clone() scify.Schema {
	newSchema := make(map[string]scify.Column)
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	newNames := make([]string, len(s.names))
	copy(newNames, s.names)
	return &schema{schema: newSchema, names: newNames}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// GetOffset returns the Column with the given name
func (s *schema) GetOffset(colName string) (offset scify.Column, err error) {
	offset, ok := s.schema[colName]
	if !ok {
		err = errors.MissingColumnError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType scify.ColumnType) (newSchema scify.Schema, err error) {
	_, containsOffset := s.schema[colName]
	if containsOffset {
		err = fmt.Errorf("Schema already contains column with name %s", colName)
	} else if columnType == nil {
		err = fmt.Errorf("Column %s must have a type", colName)
	} else {
		s.schema[colName] = &column{len(s.names), columnType}
		s.names = append(s.names, colName)
		newSchema = s
	}
	return
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []scify.ColumnType {
	types := make([]scify.ColumnType, len(s.names))
	for i, name := range s.names {
		types[i] = s.schema[name].Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in order of column index
func (s *schema) ForEachColumn(fn func(name string, col scify.Column) error) error {
	for _, name := range s.names {
		err := fn(name, s.schema[name])
		if err != nil {
			return err
		}
	}
	return nil
}

// ToString returns a string representation of this Schema
func (s *schema) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, name := range s.names {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "%s:%s", name, s.schema[name].Type().Name())
	}
	fmt.Fprint(&res, "]")
	return res.String()
}
