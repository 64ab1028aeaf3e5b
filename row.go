package scify

import "time"

// Row is a representation of a single row of tabular data,
// (a slice of a Partition), along with a reference to the
// Schema for that row. In practice, users of Row will call its
// getter and setter methods to retrieve, manipulate and store data
type Row interface {
	Schema() Schema                                        // Schema returns the schema for a row
	ToString() string                                      // ToString returns a string representation of this row
	IsNil(colName string) bool                             // IsNil returns true iff the given column value is nil in this row. If the column does not exist, this function will return false.
	SetNil(colName string) error                           // SetNil sets the given column value to nil within this row
	Get(colName string) (col interface{}, err error)       // Get returns the value of any column as an interface{}, if it exists
	GetBool(colName string) (col bool, err error)          // GetBool retrieves a single bool from the column with the given name.
	GetInt64(colName string) (col int64, err error)        // GetInt64 retrieves a single int64 from the column with the given name
	GetFloat64(colName string) (col float64, err error)    // GetFloat64 retrieves a single float64 from the column with the given name
	GetTime(colName string) (col time.Time, err error)     // GetTime retrieves a single Time from the column with the given name
	GetVarString(colName string) (col string, err error)   // GetVarString retrieves a single string from the column with the given name
	SetBool(colName string, value bool) (err error)        // SetBool modifies a single bool from the column with the given name.
	SetInt64(colName string, value int64) (err error)      // SetInt64 modifies a single int64 from the column with the given name.
	SetFloat64(colName string, value float64) (err error)  // SetFloat64 modifies a single float64 from the column with the given name.
	SetTime(colName string, value time.Time) (err error)   // SetTime modifies a single Time from the column with the given name.
	SetVarString(colName string, value string) (err error) // SetVarString modifies a single string from the column with the given name.
	Set(colName string, value interface{}) (err error)     // Set stores a value of the Go type matching the column's ColumnType
}
