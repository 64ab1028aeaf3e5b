package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/scify"
	errors "github.com/go-sif/scify/errors"
)

// Row is a representation of a single row of tabular data,
// (a slice of a Partition), along with a reference to the
// Schema for that row. Values are stored by column index,
// with nil representing a missing value.
type rowImpl struct {
	partID string
	values []interface{} // likely a slice of a partition's values
	schema scify.Schema  // schema lets us pick the values we need out of the row
}

// CreateRow builds a new row from individual internal components
func CreateRow(partID string, values []interface{}, schema scify.Schema) scify.Row {
	return &rowImpl{partID: partID, values: values, schema: schema}
}

// Schema returns the schema for a row
func (r *rowImpl) Schema() scify.Schema {
	return r.schema
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, col scify.Column) error {
		var val string
		v := r.values[col.Index()]
		if v == nil {
			val = "nil"
		} else {
			val = col.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If the column does not exist, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return false
	}
	return r.values[offset.Index()] == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	r.values[offset.Index()] = nil
	return nil
}

// Get returns the value of any column as an interface{}, if it exists. Nil values are returned as nil without error.
func (r *rowImpl) Get(colName string) (interface{}, error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	return r.values[offset.Index()], nil
}

// getTyped fetches a non-nil value from a column of the expected ColumnType
func (r *rowImpl) getTyped(colName string, expected scify.ColumnType) (interface{}, error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	if err := checkType(colName, offset.Type(), expected); err != nil {
		return nil, err
	}
	v := r.values[offset.Index()]
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

// GetBool retrieves a single bool from the column with the given name.
func (r *rowImpl) GetBool(colName string) (bool, error) {
	v, err := r.getTyped(colName, &scify.BoolColumnType{})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (int64, error) {
	v, err := r.getTyped(colName, &scify.Int64ColumnType{})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (float64, error) {
	v, err := r.getTyped(colName, &scify.Float64ColumnType{})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// GetTime retrieves a single Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (time.Time, error) {
	v, err := r.getTyped(colName, &scify.TimeColumnType{})
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

// GetVarString retrieves a single string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (string, error) {
	v, err := r.getTyped(colName, &scify.VarStringColumnType{})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SetBool modifies a single bool from the column with the given name.
func (r *rowImpl) SetBool(colName string, value bool) error {
	return r.Set(colName, value)
}

// SetInt64 modifies a single int64 from the column with the given name.
func (r *rowImpl) SetInt64(colName string, value int64) error {
	return r.Set(colName, value)
}

// SetFloat64 modifies a single float64 from the column with the given name.
func (r *rowImpl) SetFloat64(colName string, value float64) error {
	return r.Set(colName, value)
}

// SetTime modifies a single Time from the column with the given name.
func (r *rowImpl) SetTime(colName string, value time.Time) error {
	return r.Set(colName, value)
}

// SetVarString modifies a single string from the column with the given name.
func (r *rowImpl) SetVarString(colName string, value string) error {
	return r.Set(colName, value)
}

// Set stores a value of the Go type matching the column's ColumnType. A nil value is equivalent to SetNil.
func (r *rowImpl) Set(colName string, value interface{}) error {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	if value == nil {
		r.values[offset.Index()] = nil
		return nil
	}
	if err := offset.Type().Validate(value); err != nil {
		return fmt.Errorf("Column %s: %w", colName, err)
	}
	r.values[offset.Index()] = value
	return nil
}

func checkType(colName string, actual scify.ColumnType, expected scify.ColumnType) error {
	if actual.Name() != expected.Name() {
		return fmt.Errorf("Column %s has type %s, not %s", colName, actual.Name(), expected.Name())
	}
	return nil
}
