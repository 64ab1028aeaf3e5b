package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/schema"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	PartitionSize int      // The maximum number of rows per Partition. Defaults to 128.
	HeaderLines   int      // The number of lines to ignore from the beginning of each file. Defaults to 0.
	MaxBufferSize int      // Maximum size in bytes of the buffer used to read lines from the file
	Extensions    []string // File extensions handled by this Parser. Defaults to .jsonl, .ndjson and .json.
}

// Parser produces partitions from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed lazily from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	if len(conf.Extensions) == 0 {
		conf.Extensions = []string{".jsonl", ".ndjson", ".json"}
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

// Parse parses JSONL data to produce Partitions. If schema is nil, it is inferred from the data.
// Otherwise the returned iterator's Schema describes the file against schema: columns which
// no line contains are dropped, and top-level keys which no column reads are appended.
func (p *Parser) Parse(r io.Reader, schema scify.Schema, onIteratorEnd func()) (scify.PartitionIterator, error) {
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	lineNum := 0
	lines := []string{}
	for scanner.Scan() {
		lineNum++
		// ignore header lines, if configured to do so
		if lineNum <= p.conf.HeaderLines {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("line %d is not valid JSON", lineNum)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var err error
	if schema == nil {
		schema, err = inferSchema(lines)
	} else {
		schema, err = fileSchema(lines, schema)
	}
	if err != nil {
		return nil, err
	}

	iterator := &jsonlFilePartitionIterator{
		parser:       p,
		lines:        lines,
		hasNext:      len(lines) > 0,
		schema:       schema,
		endListeners: []func(){},
	}
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	return iterator, nil
}

// inferSchema builds a Schema from the top-level keys of every object, in first-seen order
func inferSchema(lines []string) (scify.Schema, error) {
	names := []string{}
	inferrers := make(map[string]*schema.ColumnTypeInferrer)
	for i, line := range lines {
		obj := gjson.Parse(line)
		if !obj.IsObject() {
			return nil, fmt.Errorf("record %d is not a JSON object", i+1)
		}
		obj.ForEach(func(key, value gjson.Result) bool {
			ci, ok := inferrers[key.String()]
			if !ok {
				ci = &schema.ColumnTypeInferrer{}
				inferrers[key.String()] = ci
				names = append(names, key.String())
			}
			if colType := jsonColumnType(value); colType != nil {
				ci.ObserveType(colType)
			}
			return true
		})
	}
	s := schema.CreateSchema()
	for _, name := range names {
		if _, err := s.CreateColumn(name, inferrers[name].ColumnType()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// fileSchema reports the columns of a file against an expected Schema
func fileSchema(lines []string, expected scify.Schema) (scify.Schema, error) {
	names := expected.ColumnNames()
	types := expected.ColumnTypes()
	present := make([]bool, len(names))
	extraNames := []string{}
	extras := make(map[string]*schema.ColumnTypeInferrer)
	for _, line := range lines {
		obj := gjson.Parse(line)
		values := topLevelValues(obj)
		for i, name := range names {
			if !present[i] && lookup(obj, values, name).Exists() {
				present[i] = true
			}
		}
		for _, key := range values.keys {
			if readsKey(names, key) {
				continue
			}
			ci, ok := extras[key]
			if !ok {
				ci = &schema.ColumnTypeInferrer{}
				extras[key] = ci
				extraNames = append(extraNames, key)
			}
			if colType := jsonColumnType(values.byKey[key]); colType != nil {
				ci.ObserveType(colType)
			}
		}
	}
	s := schema.CreateSchema()
	for i, name := range names {
		if !present[i] {
			continue
		}
		if _, err := s.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	for _, name := range extraNames {
		if _, err := s.CreateColumn(name, extras[name].ColumnType()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// readsKey returns true iff some column name is the top-level key, or a gjson path beneath it
func readsKey(names []string, key string) bool {
	for _, name := range names {
		if name == key || strings.HasPrefix(name, key+".") {
			return true
		}
	}
	return false
}
