package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/go-sif/scify"
	"github.com/go-sif/scify/aggregate"
	"github.com/go-sif/scify/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSchemaCmd(fs afero.Fs, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [directory]",
		Short: "Print the reference schema of a directory, and the files which share it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, f, args, func(_ *config.Config, res *aggregate.Result, _ *slog.Logger) error {
				w := cmd.OutOrStdout()
				err := res.Table.Schema().ForEachColumn(func(name string, col scify.Column) error {
					_, err := fmt.Fprintf(w, "%s\t%s\n", color.CyanString(name), col.Type().Name())
					return err
				})
				if err != nil {
					return err
				}
				for _, fi := range res.Files {
					fmt.Fprintf(w, "%s\t%016x\n", fi.Path, fi.Checksum)
				}
				return nil
			})
		},
	}
}
