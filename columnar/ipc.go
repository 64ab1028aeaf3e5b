package columnar

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-sif/scify"
	"github.com/go-sif/scify/internal/table"
)

// WriteIPC writes a Table to w in the Arrow IPC file format, one record batch per Partition
func WriteIPC(t scify.Table, w io.Writer) error {
	mem := memory.NewGoAllocator()
	tbl, err := ToArrow(t, mem)
	if err != nil {
		return err
	}
	defer tbl.Release()

	writer, err := ipc.NewFileWriter(w, ipc.WithSchema(tbl.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("failed to create arrow writer: %w", err)
	}
	tr := array.NewTableReader(tbl, defaultRowGroupSize)
	defer tr.Release()
	for tr.Next() {
		if err := writer.Write(tr.Record()); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write record batch: %w", err)
		}
	}
	if err := tr.Err(); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// ReadIPC reads an Arrow IPC file into a Table, with Partitions of at most partitionSize rows
func ReadIPC(r ipc.ReadAtSeeker, partitionSize int) (scify.Table, error) {
	if partitionSize <= 0 {
		partitionSize = DefaultPartitionSize
	}
	mem := memory.NewGoAllocator()
	reader, err := ipc.NewFileReader(r, ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	defer reader.Close()

	s, err := SchemaFromArrow(reader.Schema())
	if err != nil {
		return nil, err
	}
	result := table.CreateTable(s)
	for i := 0; i < reader.NumRecords(); i++ {
		rec, err := reader.Record(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read record batch %d: %w", i, err)
		}
		if err := appendRecord(result, rec, partitionSize); err != nil {
			return nil, err
		}
	}
	return result, nil
}
