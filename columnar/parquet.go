package columnar

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/go-sif/scify"
)

// ParquetConf configures the Parquet writer
type ParquetConf struct {
	Compression  string // One of snappy, zstd, gzip, brotli or none. Defaults to snappy.
	RowGroupSize int64  // The maximum number of rows per row group. Defaults to 64Ki rows.
}

const defaultRowGroupSize = 64 * 1024

// Codec returns the compression codec named by this ParquetConf
func (c *ParquetConf) Codec() (compress.Compression, error) {
	switch strings.ToLower(c.Compression) {
	case "", "snappy":
		return compress.Codecs.Snappy, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "brotli":
		return compress.Codecs.Brotli, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, fmt.Errorf("unknown parquet compression %q", c.Compression)
	}
}

// WriteParquet writes a Table to w in the Parquet format. The Arrow schema is stored
// alongside the data so that column types survive a round trip.
func WriteParquet(t scify.Table, w io.Writer, conf *ParquetConf) error {
	if conf == nil {
		conf = &ParquetConf{}
	}
	codec, err := conf.Codec()
	if err != nil {
		return err
	}
	rowGroupSize := conf.RowGroupSize
	if rowGroupSize <= 0 {
		rowGroupSize = defaultRowGroupSize
	}

	mem := memory.NewGoAllocator()
	tbl, err := ToArrow(t, mem)
	if err != nil {
		return err
	}
	defer tbl.Release()

	// Create Parquet writer properties
	props := parquet.NewWriterProperties(parquet.WithCompression(codec), parquet.WithAllocator(mem))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(tbl.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteTable(tbl, rowGroupSize); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads a Parquet file into a Table, with Partitions of at most partitionSize rows
func ReadParquet(r parquet.ReaderAtSeeker, partitionSize int) (scify.Table, error) {
	mem := memory.NewGoAllocator()
	pf, err := file.NewParquetReader(r, file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	// Convert parquet to Arrow table
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer tbl.Release()

	return FromArrow(tbl, partitionSize)
}
