// Package columnar converts Scify Tables to and from Apache Arrow, and exports them to
// columnar interchange files: Parquet and the Arrow IPC file format (Feather v2).
package columnar
