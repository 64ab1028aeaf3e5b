package main

import (
	"fmt"
	"log/slog"

	"github.com/go-sif/scify/aggregate"
	"github.com/go-sif/scify/config"
	"github.com/go-sif/scify/datasource/parser"
	"github.com/go-sif/scify/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// flags are shared by every subcommand, and override values from the config file when set
type flags struct {
	configPath     string
	pattern        string
	format         string
	recursive      bool
	skipDuplicates bool
	out            string
	compression    string
	logLevel       string
	seqURL         string
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "scify",
		Short:        "Merge a directory of identically-structured data files",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&f.pattern, "pattern", "p", "", "glob pattern matched against file names (default: the format's extensions)")
	pf.StringVarP(&f.format, "format", "f", "", fmt.Sprintf("input format, one of %v (default: detected from the first file)", parser.Formats()))
	pf.BoolVarP(&f.recursive, "recursive", "r", false, "include files in subdirectories")
	pf.BoolVar(&f.skipDuplicates, "skip-duplicates", false, "skip files whose content duplicates an earlier file")
	pf.StringVar(&f.logLevel, "log-level", "", "one of trace, debug, info, warn, error")
	pf.StringVar(&f.seqURL, "seq-url", "", "also ship logs to the Seq server at this URL")

	merge := newMergeCmd(fs, f)
	merge.Flags().StringVarP(&f.out, "out", "o", "", "export the merged table to this .parquet, .arrow or .feather file")
	merge.Flags().StringVar(&f.compression, "compression", "", "parquet compression, one of snappy, zstd, gzip, brotli, none")
	root.AddCommand(merge, newSchemaCmd(fs, f))
	return root
}

// resolveConfig loads the config file, if any, and applies command-line overrides
func resolveConfig(cmd *cobra.Command, fs afero.Fs, f *flags, args []string) (*config.Config, error) {
	conf := config.Default()
	if len(f.configPath) > 0 {
		loaded, err := config.Load(fs, f.configPath)
		if err != nil {
			return nil, err
		}
		conf = loaded
	}
	if len(args) > 0 {
		conf.Directory = args[0]
	}
	changed := cmd.Flags().Changed
	if changed("pattern") {
		conf.Pattern = f.pattern
	}
	if changed("format") {
		conf.Format = f.format
	}
	if changed("recursive") {
		conf.Recursive = f.recursive
	}
	if changed("skip-duplicates") {
		conf.SkipDuplicates = f.skipDuplicates
	}
	if changed("out") {
		conf.Export.Path = f.out
	}
	if changed("compression") {
		conf.Export.Compression = f.compression
	}
	if changed("log-level") {
		conf.Log.Level = f.logLevel
	}
	if changed("seq-url") {
		conf.Log.SeqURL = f.seqURL
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// run resolves configuration, sets up logging and aggregates, then hands the result to fn
func run(cmd *cobra.Command, fs afero.Fs, f *flags, args []string, fn func(*config.Config, *aggregate.Result, *slog.Logger) error) error {
	conf, err := resolveConfig(cmd, fs, f, args)
	if err != nil {
		return err
	}
	lc, err := conf.LoggingConf()
	if err != nil {
		return err
	}
	lc.Output = cmd.ErrOrStderr()
	logger, closeFn := logging.SetupLogger(lc)
	defer closeFn()

	opts, err := conf.AggregateOptions(fs, logger)
	if err != nil {
		return err
	}
	res, err := aggregate.Aggregate(conf.Directory, opts)
	if err != nil {
		logger.Error("aggregation failed", "error", err)
		return err
	}
	return fn(conf, res, logger)
}
