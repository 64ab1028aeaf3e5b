// Command scify merges a directory of identically-structured data files into one table,
// optionally exporting it to Parquet or Arrow IPC.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
