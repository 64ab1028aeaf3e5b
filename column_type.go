package scify

import (
	"fmt"
	"time"
)

// ColumnType is an interface which is implemented to define supported column types.
// Scify provides a small set of built-in types which cover the values its Parsers
// can infer from text, as well as timestamps.
type ColumnType interface {
	Name() string                  // returns a stable name for this type, used in Schema fingerprints and configuration
	Validate(v interface{}) error  // returns an error if v is not a Go value of this type
	ToString(v interface{}) string // produces a string representation of a value of this type
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name of a BoolColumnType
func (b *BoolColumnType) Name() string {
	return "bool"
}

// Validate checks that v is a bool
func (b *BoolColumnType) Validate(v interface{}) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", v)
	}
	return nil
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Int64ColumnType is a column type which stores a int64 value
type Int64ColumnType struct{}

// Name of an Int64ColumnType
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// Validate checks that v is an int64
func (b *Int64ColumnType) Validate(v interface{}) error {
	if _, ok := v.(int64); !ok {
		return fmt.Errorf("expected int64, got %T", v)
	}
	return nil
}

// ToString produces a string representation of a value of a Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name of a Float64ColumnType
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// Validate checks that v is a float64
func (b *Float64ColumnType) Validate(v interface{}) error {
	if _, ok := v.(float64); !ok {
		return fmt.Errorf("expected float64, got %T", v)
	}
	return nil
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%g", v.(float64))
}

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// Name of a VarStringColumnType
func (b *VarStringColumnType) Name() string {
	return "string"
}

// Validate checks that v is a string
func (b *VarStringColumnType) Validate(v interface{}) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("expected string, got %T", v)
	}
	return nil
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// TimeColumnType is a column type which stores a time.Time value.
// Format is the layout used by Parsers to read the value from text.
type TimeColumnType struct {
	Format string
}

// Name of a TimeColumnType
func (b *TimeColumnType) Name() string {
	return "time"
}

// Validate checks that v is a time.Time
func (b *TimeColumnType) Validate(v interface{}) error {
	if _, ok := v.(time.Time); !ok {
		return fmt.Errorf("expected time.Time, got %T", v)
	}
	return nil
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	format := b.Format
	if len(format) == 0 {
		format = time.RFC3339Nano
	}
	return v.(time.Time).Format(format)
}

// ColumnTypeFromName returns the built-in ColumnType with the given name.
// For "time", format is used as the TimeColumnType's Format.
func ColumnTypeFromName(name string, format string) (ColumnType, error) {
	switch name {
	case "bool":
		return &BoolColumnType{}, nil
	case "int64":
		return &Int64ColumnType{}, nil
	case "float64":
		return &Float64ColumnType{}, nil
	case "string":
		return &VarStringColumnType{}, nil
	case "time":
		if len(format) == 0 {
			format = time.RFC3339
		}
		return &TimeColumnType{Format: format}, nil
	default:
		return nil, fmt.Errorf("unknown column type %q", name)
	}
}
