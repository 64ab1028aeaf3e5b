// Package parquet provides a DataSourceParser for Apache Parquet files
package parquet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/columnar"
)

// ParserConf configures a Parquet Parser
type ParserConf struct {
	PartitionSize int      // The maximum number of rows per Partition. Defaults to 128.
	Extensions    []string // File extensions handled by this Parser. Defaults to .parquet and .pq.
}

// Parser produces partitions from Parquet data
type Parser struct {
	conf *ParserConf
}

type readerAtSeeker interface {
	io.ReaderAt
	io.Seeker
}

// CreateParser returns a new Parquet Parser. Parquet files carry their own Schema, which
// is always reported as-is so that it may be compared against an expected one.
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = columnar.DefaultPartitionSize
	}
	if len(conf.Extensions) == 0 {
		conf.Extensions = []string{".parquet", ".pq"}
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced by this Parser
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

// Extensions returns the file extensions this Parser understands
func (p *Parser) Extensions() []string {
	return p.conf.Extensions
}

// Parse parses Parquet data to produce Partitions. Parquet needs random access to its
// footer, so readers which cannot seek are buffered in memory first.
func (p *Parser) Parse(r io.Reader, schema scify.Schema, onIteratorEnd func()) (scify.PartitionIterator, error) {
	ras, ok := r.(readerAtSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		ras = bytes.NewReader(data)
	}
	tbl, err := columnar.ReadParquet(ras, p.conf.PartitionSize)
	if err != nil {
		return nil, fmt.Errorf("invalid parquet data: %w", err)
	}
	iterator := &parquetFilePartitionIterator{
		schema:       tbl.Schema(),
		partitions:   tbl.Partitions(),
		endListeners: []func(){},
	}
	iterator.hasNext = len(iterator.partitions) > 0
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	return iterator, nil
}
