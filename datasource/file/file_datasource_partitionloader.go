package file

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/scify"
	"github.com/pierrec/lz4"
)

// CompressedExtension marks files which are decompressed with lz4 before parsing
const CompressedExtension = ".lz4"

// PartitionLoader is capable of loading partitions of data from a file
type PartitionLoader struct {
	path     string
	source   *DataSource
	checksum uint64
	size     int
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Path returns the path of the file this PartitionLoader reads
func (pl *PartitionLoader) Path() string {
	return pl.path
}

// Checksum returns the xxhash of the (decompressed) file contents. Only valid after Load.
func (pl *PartitionLoader) Checksum() uint64 {
	return pl.checksum
}

// Size returns the size in bytes of the (decompressed) file contents. Only valid after Load.
func (pl *PartitionLoader) Size() int {
	return pl.size
}

// Load reads the file and hands its contents to the parser. The file is closed before Load returns.
func (pl *PartitionLoader) Load(parser scify.DataSourceParser, schema scify.Schema) (scify.PartitionIterator, error) {
	data, err := pl.read()
	if err != nil {
		return nil, err
	}
	pl.checksum = xxhash.Sum64(data)
	pl.size = len(data)
	pi, err := parser.Parse(bytes.NewReader(data), schema, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", pl.path, err)
	}
	return pi, nil
}

func (pl *PartitionLoader) read() (data []byte, err error) {
	f, err := pl.source.fs.Open(pl.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(pl.path), CompressedExtension) {
		r = lz4.NewReader(f)
	}
	data, err = io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", pl.path, err)
	}
	return data, nil
}
