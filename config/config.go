// Package config loads aggregation settings from YAML files
package config

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/aggregate"
	"github.com/go-sif/scify/columnar"
	"github.com/go-sif/scify/datasource/parser"
	"github.com/go-sif/scify/logging"
	"github.com/go-sif/scify/schema"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// ColumnConf declares a single column of an expected Schema
type ColumnConf struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`   // one of bool, int64, float64, string or time
	Format string `yaml:"format"` // time columns only, as a Go reference layout
}

// ParserConf holds Parser options
type ParserConf struct {
	PartitionSize int    `yaml:"partition_size"`
	NoHeader      bool   `yaml:"no_header"`
	Comment       string `yaml:"comment"`
	NilValue      string `yaml:"nil_value"`
	HeaderLines   int    `yaml:"header_lines"`
}

// ExportConf holds columnar export options
type ExportConf struct {
	Path         string `yaml:"path"`
	Compression  string `yaml:"compression"`
	RowGroupSize int64  `yaml:"row_group_size"`
}

// LogConf holds logging options
type LogConf struct {
	Level  string `yaml:"level"`
	SeqURL string `yaml:"seq_url"`
}

// Config describes a complete aggregation
type Config struct {
	Directory      string       `yaml:"directory"`
	Pattern        string       `yaml:"pattern"`
	Recursive      bool         `yaml:"recursive"`
	Format         string       `yaml:"format"`
	SkipDuplicates bool         `yaml:"skip_duplicates"`
	ParserOptions  ParserConf   `yaml:"parser"`
	Columns        []ColumnConf `yaml:"schema"`
	Export         ExportConf   `yaml:"export"`
	Log            LogConf      `yaml:"log"`
}

// Default returns a Config which aggregates the current directory with every option at its default
func Default() *Config {
	return &Config{
		Directory: ".",
		Log:       LogConf{Level: logging.LogLevelToString(logging.InfoLevel)},
	}
}

// Load reads a YAML Config from fs. Unset values keep their defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	conf := Default()
	if err := yaml.UnmarshalStrict(data, conf); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks that every option holds a usable value
func (c *Config) Validate() error {
	if len(c.Directory) == 0 {
		return fmt.Errorf("directory must not be empty")
	}
	if len(c.Format) > 0 {
		if _, err := parser.ForFormat(c.Format, nil); err != nil {
			return err
		}
	}
	if c.ParserOptions.PartitionSize < 0 {
		return fmt.Errorf("parser.partition_size must not be negative")
	}
	if c.ParserOptions.HeaderLines < 0 {
		return fmt.Errorf("parser.header_lines must not be negative")
	}
	if utf8.RuneCountInString(c.ParserOptions.Comment) > 1 {
		return fmt.Errorf("parser.comment must be a single character, was %q", c.ParserOptions.Comment)
	}
	if _, err := c.Schema(); err != nil {
		return err
	}
	if len(c.Export.Path) > 0 {
		if _, err := columnar.FormatForPath(c.Export.Path); err != nil {
			return err
		}
	}
	if _, err := c.ParquetConf().Codec(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParserConf returns the options for Parsers built from this Config
func (c *Config) ParserConf() *parser.Conf {
	conf := &parser.Conf{
		PartitionSize: c.ParserOptions.PartitionSize,
		NoHeader:      c.ParserOptions.NoHeader,
		NilValue:      c.ParserOptions.NilValue,
		HeaderLines:   c.ParserOptions.HeaderLines,
	}
	if r, _ := utf8.DecodeRuneInString(c.ParserOptions.Comment); r != utf8.RuneError {
		conf.Comment = r
	}
	return conf
}

// Parser returns the Parser for the configured format, or nil if the format should be detected
func (c *Config) Parser() (scify.DataSourceParser, error) {
	if len(c.Format) == 0 {
		return nil, nil
	}
	return parser.ForFormat(c.Format, c.ParserConf())
}

// Schema returns the declared Schema, or nil if it should be inferred
func (c *Config) Schema() (scify.Schema, error) {
	if len(c.Columns) == 0 {
		return nil, nil
	}
	s := schema.CreateSchema()
	for i, col := range c.Columns {
		if len(col.Name) == 0 {
			return nil, fmt.Errorf("schema column %d has no name", i)
		}
		colType, err := scify.ColumnTypeFromName(col.Type, col.Format)
		if err != nil {
			return nil, fmt.Errorf("schema column %s: %w", col.Name, err)
		}
		if _, err := s.CreateColumn(col.Name, colType); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParquetConf returns the options for Parquet export
func (c *Config) ParquetConf() *columnar.ParquetConf {
	return &columnar.ParquetConf{
		Compression:  c.Export.Compression,
		RowGroupSize: c.Export.RowGroupSize,
	}
}

// LoggingConf returns the options for logging.SetupLogger, minus the output
func (c *Config) LoggingConf() (*logging.Conf, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return &logging.Conf{Level: level, SeqURL: c.Log.SeqURL}, nil
}

// AggregateOptions returns the aggregate.Options described by this Config
func (c *Config) AggregateOptions(fs afero.Fs, logger *slog.Logger) (*aggregate.Options, error) {
	p, err := c.Parser()
	if err != nil {
		return nil, err
	}
	s, err := c.Schema()
	if err != nil {
		return nil, err
	}
	return &aggregate.Options{
		Fs:             fs,
		Pattern:        c.Pattern,
		Recursive:      c.Recursive,
		Parser:         p,
		ParserConf:     c.ParserConf(),
		Schema:         s,
		SkipDuplicates: c.SkipDuplicates,
		Logger:         logger,
	}, nil
}
