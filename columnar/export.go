package columnar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sif/scify"
	"github.com/spf13/afero"
)

// Format identifies a columnar file format
type Format int

const (
	// FormatParquet is Apache Parquet
	FormatParquet Format = iota
	// FormatIPC is the Arrow IPC file format, also known as Feather v2
	FormatIPC
)

// FormatForPath determines a columnar Format from a file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".arrow", ".feather", ".ipc":
		return FormatIPC, nil
	default:
		return FormatParquet, fmt.Errorf("cannot determine columnar format of %s", path)
	}
}

// ExportFile writes a Table to path, choosing the format from its extension. conf only applies to Parquet.
func ExportFile(fs afero.Fs, path string, t scify.Table, conf *ParquetConf) (err error) {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		// the parquet writer may already have closed the file
		if cerr := f.Close(); cerr != nil && err == nil && !errors.Is(cerr, os.ErrClosed) {
			err = cerr
		}
	}()
	switch format {
	case FormatIPC:
		return WriteIPC(t, f)
	default:
		return WriteParquet(t, f, conf)
	}
}

// ImportFile reads a columnar file into a Table, choosing the format from its extension
func ImportFile(fs afero.Fs, path string, partitionSize int) (scify.Table, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch format {
	case FormatIPC:
		return ReadIPC(f, partitionSize)
	default:
		return ReadParquet(f, partitionSize)
	}
}
