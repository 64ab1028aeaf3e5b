// Package parser selects a DataSourceParser by format name or file extension
package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/datasource/parser/dsv"
	"github.com/go-sif/scify/datasource/parser/jsonl"
	"github.com/go-sif/scify/datasource/parser/parquet"
)

// compressedExtension marks lz4-compressed input, which is decompressed before parsing
const compressedExtension = ".lz4"

// Conf holds the options shared by the Parsers this package constructs.
// Options which do not apply to a format are ignored.
type Conf struct {
	PartitionSize int    // The maximum number of rows per Partition. Defaults to 128.
	NoHeader      bool   // DSV only. The first line is data rather than column names.
	Comment       rune   // DSV only. Lines beginning with this character are ignored.
	NilValue      string // DSV only. A special string which represents nil values.
	HeaderLines   int    // JSONL only. The number of lines to ignore at the beginning of each file.
}

type factory func(conf *Conf) scify.DataSourceParser

var formats = map[string]factory{
	"csv": func(conf *Conf) scify.DataSourceParser {
		return dsv.CreateParser(&dsv.ParserConf{
			PartitionSize: conf.PartitionSize,
			NoHeader:      conf.NoHeader,
			Comment:       conf.Comment,
			NilValue:      conf.NilValue,
		})
	},
	"tsv": func(conf *Conf) scify.DataSourceParser {
		return dsv.CreateParser(&dsv.ParserConf{
			PartitionSize: conf.PartitionSize,
			NoHeader:      conf.NoHeader,
			Delimiter:     '\t',
			Comment:       conf.Comment,
			NilValue:      conf.NilValue,
		})
	},
	"jsonl": func(conf *Conf) scify.DataSourceParser {
		return jsonl.CreateParser(&jsonl.ParserConf{
			PartitionSize: conf.PartitionSize,
			HeaderLines:   conf.HeaderLines,
		})
	},
	"parquet": func(conf *Conf) scify.DataSourceParser {
		return parquet.CreateParser(&parquet.ParserConf{
			PartitionSize: conf.PartitionSize,
		})
	},
}

var aliases = map[string]string{
	"ndjson": "jsonl",
	"json":   "jsonl",
	"tab":    "tsv",
	"pq":     "parquet",
}

// Formats returns the names of every supported format
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns a Parser for the named format. conf may be nil.
func ForFormat(name string, conf *Conf) (scify.DataSourceParser, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	create, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q, expected one of %s", name, strings.Join(Formats(), ", "))
	}
	if conf == nil {
		conf = &Conf{}
	}
	return create(conf), nil
}

// ForPath returns a Parser for a file, chosen by its extension. A trailing .lz4 is ignored.
func ForPath(path string, conf *Conf) (scify.DataSourceParser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == compressedExtension {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	if len(ext) == 0 {
		return nil, fmt.Errorf("cannot determine the format of %s", path)
	}
	return ForFormat(ext, conf)
}
