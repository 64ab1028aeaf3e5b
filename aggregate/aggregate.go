package aggregate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/columnar"
	"github.com/go-sif/scify/datasource/file"
	"github.com/go-sif/scify/datasource/parser"
	errors "github.com/go-sif/scify/errors"
	"github.com/go-sif/scify/internal/stats"
	"github.com/go-sif/scify/internal/table"
	"github.com/go-sif/scify/logging"
	"github.com/go-sif/scify/schema"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// Options configures an aggregation
type Options struct {
	Fs             afero.Fs               // The filesystem to read from. Defaults to the OS filesystem.
	Pattern        string                 // A glob pattern matched against file base names. Defaults to the Parser's extensions.
	Recursive      bool                   // If true, files in subdirectories are also aggregated
	Parser         scify.DataSourceParser // Defaults to a Parser chosen by the extension of the first matching file
	ParserConf     *parser.Conf           // Options for the Parser chosen when Parser is nil
	Schema         scify.Schema           // The expected Schema. If nil, the first file containing data is the reference.
	SkipDuplicates bool                   // If true, files with the same content as an earlier file are skipped
	Logger         *slog.Logger           // Defaults to a logger which discards everything
}

// FileInfo describes a file which was merged into an aggregated Table
type FileInfo struct {
	Path     string
	NumRows  int
	Checksum uint64 // xxhash of the decompressed file contents
}

// Result is the outcome of a successful aggregation
type Result struct {
	Table scify.Table
	Files []FileInfo
	Stats scify.AggregationStatistics
}

// Export writes the aggregated Table to a columnar file, choosing the format by extension
func (r *Result) Export(fs afero.Fs, path string, conf *columnar.ParquetConf) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return columnar.ExportFile(fs, path, r.Table, conf)
}

// aggregator holds the state of a single aggregation
type aggregator struct {
	dir         string
	opts        *Options
	logger      *slog.Logger
	stats       *stats.RunStatistics
	reference   scify.Schema // the typed Schema every file with data must equal
	provisional scify.Schema // the Schema of the first empty file, compared by column names only
	result      table.BuildableTable
	files       []FileInfo
	checksums   map[uint64]string
	mismatches  *multierror.Error
}

// Aggregate reads every matching file in dir and concatenates them into a single Table, in
// file discovery order then in-file row order. The filesystem is never modified.
func Aggregate(dir string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	o := *opts
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	a := &aggregator{
		dir:       dir,
		opts:      &o,
		logger:    o.Logger.With("dir", dir),
		stats:     &stats.RunStatistics{},
		reference: o.Schema,
		checksums: make(map[uint64]string),
	}
	return a.run()
}

func (a *aggregator) run() (*Result, error) {
	a.stats.Start()
	p, err := a.resolveParser()
	if err != nil {
		return nil, err
	}
	conf := &file.Conf{Pattern: a.opts.Pattern, Recursive: a.opts.Recursive}
	if len(conf.Pattern) == 0 {
		conf.Extensions = p.Extensions()
	}
	pm, err := file.CreateDataSource(a.opts.Fs, a.dir, conf).AnalyzeFiles()
	if err != nil {
		return nil, err
	}
	a.logger.Info("aggregating files", "files", pm.Len(), "extensions", strings.Join(p.Extensions(), ","))
	if a.reference != nil {
		a.result = table.CreateTable(a.reference)
	}

	for pm.HasNext() {
		if err := a.readFile(pm.NextFile(), p); err != nil {
			return nil, err
		}
	}
	a.stats.Finish()
	if err := a.mismatches.ErrorOrNil(); err != nil {
		a.logger.Error("schema mismatch", "files", len(a.mismatches.Errors))
		return nil, err
	}
	if a.result == nil {
		s := a.provisional
		if s == nil {
			s = schema.CreateSchema()
		}
		a.result = table.CreateTable(s)
	}
	a.logger.Info("aggregation complete",
		"files", len(a.files),
		"skipped", a.stats.GetNumFilesSkipped(),
		"rows", a.result.NumRows(),
		"runtime", a.stats.GetRuntime(),
	)
	return &Result{Table: a.result, Files: a.files, Stats: a.stats}, nil
}

// resolveParser returns the configured Parser, or chooses one by the extension of the first recognizable matching file
func (a *aggregator) resolveParser() (scify.DataSourceParser, error) {
	if a.opts.Parser != nil {
		return a.opts.Parser, nil
	}
	files, err := file.CreateDataSource(a.opts.Fs, a.dir, &file.Conf{
		Pattern:   a.opts.Pattern,
		Recursive: a.opts.Recursive,
	}).List()
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		if p, err := parser.ForPath(path, a.opts.ParserConf); err == nil {
			a.logger.Debug("selected parser", "file", path, "extensions", strings.Join(p.Extensions(), ","))
			return p, nil
		}
	}
	pattern := a.opts.Pattern
	if len(pattern) == 0 {
		pattern = "*"
	}
	return nil, errors.NoMatchingFilesError{Path: a.dir, Pattern: pattern}
}

// readFile loads a single file and merges it into the result, unless it must be skipped.
// Once a reference Schema exists, files are parsed against it, so that columns which are
// sparse in one file are typed like the rest. Schema mismatches are accumulated rather than returned.
func (a *aggregator) readFile(pl *file.PartitionLoader, p scify.DataSourceParser) error {
	a.stats.StartFile()
	path := pl.Path()
	logger := a.logger.With("file", path)
	expected := a.reference
	pi, err := pl.Load(p, expected)
	if err != nil {
		return err
	}
	if a.opts.SkipDuplicates {
		if original, ok := a.checksums[pl.Checksum()]; ok {
			logger.Info("skipping duplicate file", "duplicate_of", original)
			a.stats.EndFile(true)
			return nil
		}
		a.checksums[pl.Checksum()] = path
	}
	fileSchema := pi.Schema()
	if fileSchema.NumColumns() == 0 {
		logger.Warn("skipping file without columns")
		a.stats.EndFile(true)
		return nil
	}

	if !pi.HasNextPartition() {
		// without data, inferred types are meaningless
		if err := a.checkColumnNames(fileSchema); err != nil {
			a.mismatch(logger, path, err)
			return nil
		}
		if a.provisional == nil {
			a.provisional = fileSchema
		}
		a.files = append(a.files, FileInfo{Path: path, NumRows: 0, Checksum: pl.Checksum()})
		a.stats.EndFile(false)
		logger.Debug("merged empty file")
		return nil
	}

	if expected == nil {
		if err := a.checkColumnNames(fileSchema); err != nil {
			a.mismatch(logger, path, err)
			return nil
		}
	} else if err := expected.Equals(fileSchema); err != nil {
		a.mismatch(logger, path, err)
		return nil
	}

	parts := []scify.Partition{}
	numRows := 0
	for pi.HasNextPartition() {
		part, err := pi.NextPartition()
		if err != nil && expected != nil {
			// a value which cannot be read as the reference type
			a.mismatch(logger, path, err)
			return nil
		} else if err != nil {
			return fmt.Errorf("unable to parse %s: %w", path, err)
		}
		numRows += part.GetNumRows()
		parts = append(parts, part)
	}

	if a.reference == nil {
		a.reference = fileSchema
		a.result = table.CreateTable(fileSchema)
		logger.Debug("established reference schema", "schema", fileSchema.ToString())
	}
	// once a mismatch has been found there is no point in building the result
	if a.mismatches == nil {
		for _, part := range parts {
			if err := a.result.Append(part); err != nil {
				return fmt.Errorf("unable to merge %s: %w", path, err)
			}
		}
	}
	for _, part := range parts {
		a.stats.AddPartition(part.GetNumRows())
	}
	a.files = append(a.files, FileInfo{Path: path, NumRows: numRows, Checksum: pl.Checksum()})
	a.stats.EndFile(false)
	logger.Debug("merged file", "rows", numRows)
	return nil
}

// checkColumnNames compares column names only, against whichever reference Schema exists
func (a *aggregator) checkColumnNames(s scify.Schema) error {
	expected := a.reference
	if expected == nil {
		expected = a.provisional
	}
	if expected == nil {
		return nil
	}
	names := s.ColumnNames()
	expectedNames := expected.ColumnNames()
	if len(names) != len(expectedNames) {
		return fmt.Errorf("Schemas have unequal numbers of columns (%d vs %d)", len(expectedNames), len(names))
	}
	for i, name := range names {
		if name != expectedNames[i] {
			return fmt.Errorf("Column %d is named %s, expected %s", i, name, expectedNames[i])
		}
	}
	return nil
}

func (a *aggregator) mismatch(logger *slog.Logger, path string, cause error) {
	logger.Warn("schema mismatch", "cause", cause)
	a.stats.EndFile(true)
	a.mismatches = multierror.Append(a.mismatches, errors.SchemaMismatchError{Path: path, Cause: cause})
}
