package dsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/schema"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	PartitionSize    int      // The maximum number of rows per Partition. Defaults to 128.
	NoHeader         bool     // If true, the first line is data rather than column names. Inferred columns are then named _c0, _c1, ...
	Delimiter        rune     // The delimiter separating columns in the file. Defaults to ,
	Comment          rune     // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue         string   // A special string which represents nil values in the dataset. The empty string is always nil.
	LazyQuotes       bool     // If true, a quote may appear in an unquoted field and a non-doubled quote may appear in a quoted field
	TrimLeadingSpace bool     // If true, leading white space in a field is ignored
	Extensions       []string // File extensions handled by this Parser. Defaults to .csv, or .tsv when the Delimiter is a tab.
}

// Parser produces partitions from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	if len(conf.Extensions) == 0 {
		switch conf.Delimiter {
		case ',':
			conf.Extensions = []string{".csv"}
		case '\t':
			conf.Extensions = []string{".tsv", ".tab"}
		default:
			conf.Extensions = []string{".txt"}
		}
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

// isNil returns true iff a raw value represents a nil
func (p *Parser) isNil(value string) bool {
	return len(value) == 0 || (len(p.conf.NilValue) > 0 && value == p.conf.NilValue)
}

// Parse parses DSV data to produce Partitions. If schema is nil, column types are inferred
// from the data. Otherwise the returned iterator's Schema carries the file's own column
// names, typed positionally according to schema, so that callers can compare them.
func (p *Parser) Parse(r io.Reader, schema scify.Schema, onIteratorEnd func()) (scify.PartitionIterator, error) {
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.LazyQuotes = p.conf.LazyQuotes
	reader.TrimLeadingSpace = p.conf.TrimLeadingSpace
	reader.FieldsPerRecord = 0 // every record must have as many fields as the first

	var header []string
	if !p.conf.NoHeader {
		record, err := reader.Read()
		if err != nil && err != io.EOF {
			return nil, err
		}
		header = record
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	fileSchema, err := p.fileSchema(header, records, schema)
	if err != nil {
		return nil, err
	}

	iterator := &dsvFilePartitionIterator{
		parser:       p,
		records:      records,
		hasNext:      len(records) > 0,
		schema:       fileSchema,
		endListeners: []func(){},
	}
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	return iterator, nil
}

// fileSchema determines the Schema of a file from its header, its records and any supplied Schema
func (p *Parser) fileSchema(header []string, records [][]string, supplied scify.Schema) (scify.Schema, error) {
	numCols := len(header)
	if header == nil && len(records) > 0 {
		numCols = len(records[0])
	}
	names := header
	if names == nil {
		names = make([]string, numCols)
		for i := range names {
			if supplied != nil && numCols == supplied.NumColumns() {
				names[i] = supplied.ColumnNames()[i]
			} else {
				names[i] = fmt.Sprintf("_c%d", i)
			}
		}
	}
	if supplied == nil {
		return schema.InferSchema(names, records, p.isNil)
	}
	// type columns positionally, falling back to strings for columns beyond the supplied Schema
	suppliedTypes := supplied.ColumnTypes()
	s := schema.CreateSchema()
	for i, name := range names {
		var colType scify.ColumnType = &scify.VarStringColumnType{}
		if i < len(suppliedTypes) {
			colType = suppliedTypes[i]
		}
		if _, err := s.CreateColumn(name, colType); err != nil {
			return nil, err
		}
	}
	return s, nil
}
