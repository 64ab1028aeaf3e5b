package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/go-sif/scify/aggregate"
	"github.com/go-sif/scify/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newMergeCmd(fs afero.Fs, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "merge [directory]",
		Short: "Merge every matching file in a directory, and optionally export the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, f, args, func(conf *config.Config, res *aggregate.Result, logger *slog.Logger) error {
				printSummary(cmd, res)
				if len(conf.Export.Path) == 0 {
					return nil
				}
				if err := res.Export(fs, conf.Export.Path, conf.ParquetConf()); err != nil {
					return fmt.Errorf("unable to export to %s: %w", conf.Export.Path, err)
				}
				logger.Info("exported merged table", "path", conf.Export.Path, "rows", res.Table.NumRows())
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("exported"), conf.Export.Path)
				return nil
			})
		},
	}
}

func printSummary(cmd *cobra.Command, res *aggregate.Result) {
	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	for _, fi := range res.Files {
		fmt.Fprintf(w, "%s %s (%d rows)\n", color.GreenString("merged"), fi.Path, fi.NumRows)
	}
	if skipped := res.Stats.GetNumFilesSkipped(); skipped > 0 {
		fmt.Fprintf(w, "%s %d files\n", color.YellowString("skipped"), skipped)
	}
	bold.Fprintf(w, "%d rows, %d columns from %d files in %s\n",
		res.Table.NumRows(),
		res.Table.NumColumns(),
		len(res.Files),
		res.Stats.GetRuntime(),
	)
}
