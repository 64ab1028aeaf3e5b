package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// MissingColumnError occurs when a Row or Schema is asked for a column it does not contain
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// PartitionFullError occurs when a Partition has reached its max size an a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// DirectoryNotFoundError occurs when the directory to aggregate does not exist, or is not a directory
type DirectoryNotFoundError struct{ Path string }

// Error returns a textual representation of this DirectoryNotFoundError
func (e DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("Directory %s does not exist", e.Path)
}

// NoMatchingFilesError occurs when a directory contains no files matching the requested pattern
type NoMatchingFilesError struct {
	Path    string
	Pattern string
}

// Error returns a textual representation of this NoMatchingFilesError
func (e NoMatchingFilesError) Error() string {
	return fmt.Sprintf("Directory %s contains no files matching %s", e.Path, e.Pattern)
}

// SchemaMismatchError occurs when a file's Schema disagrees with the reference Schema
type SchemaMismatchError struct {
	Path  string // the offending file
	Cause error  // the first difference between the Schemas
}

// Error returns a textual representation of this SchemaMismatchError
func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("Schema of %s does not match reference schema: %v", e.Path, e.Cause)
}

// Unwrap returns the difference which caused this SchemaMismatchError
func (e SchemaMismatchError) Unwrap() error {
	return e.Cause
}
