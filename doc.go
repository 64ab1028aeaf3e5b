// Package scify contains the core components of Scify, a reader for directories of
// files which share an identical structure. This root package defines the types
// employed during regular use of the library (Schemas, Rows, Partitions and Tables)
// as well as those implemented by DataSources and Parsers when extending it.
package scify
