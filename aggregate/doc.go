// Package aggregate merges a directory of identically-structured data files into a single Table.
//
// Files are discovered with a glob pattern, parsed one at a time in lexicographic order, and
// checked against a reference Schema (the Schema of the first file containing data, unless one
// is supplied). Every file whose Schema disagrees with the reference is reported.
package aggregate
