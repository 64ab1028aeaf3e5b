// Package file provides a DataSource which reads data from a directory of files on disk.
// Each matching file becomes a single PartitionLoader, and files are loaded in the
// lexicographic order of their paths. Files ending in .lz4 are decompressed transparently.
package file
