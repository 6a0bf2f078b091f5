package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hexagg/internal/session"
	"github.com/sells-group/hexagg/internal/tabular"
)

var enrichFlags inputFlags

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Append the H3 cell of every record",
	Long: `Writes every record with valid coordinates, in file order, with an extra
h3Index column for the cell at the chosen resolution.

Examples:
  # Keep coordinates, resolution from config
  hexagg enrich --input points.csv --output points-h3.csv

  # Drop lat/lon from the export
  hexagg enrich --input points.csv --resolution 8 --include-coordinates=false`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := resolveOptions(cmd, &enrichFlags, cfg)
		if err != nil {
			return err
		}
		opts.Aggregations = nil
		return runEnrich(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	addInputFlags(enrichCmd, &enrichFlags)
	addOutputFlags(enrichCmd, &enrichFlags)
	enrichCmd.Flags().BoolVar(&enrichFlags.includeCoordinates, "include-coordinates", true, "keep lat and lon columns in the output (overrides engine.include_coordinates)")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(ctx context.Context, opts runOptions, stdout io.Writer) error {
	return exportTable(ctx, opts, session.Enriched, stdout)
}

// exportTable loads the input and writes the table for mode.
func exportTable(ctx context.Context, opts runOptions, mode session.Mode, stdout io.Writer) error {
	s, err := loadSession(ctx, opts)
	if err != nil {
		return err
	}

	tbl, err := s.Export(mode)
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(opts.Output, stdout)
	if err != nil {
		return err
	}
	if err := tabular.Write(w, opts.Format, tbl.Columns, tbl.Matrix()); err != nil {
		_ = closeFn()
		return eris.Wrap(err, "write output")
	}
	if err := closeFn(); err != nil {
		return eris.Wrap(err, "close output")
	}

	zap.L().Info("export complete",
		zap.Int("records", tbl.Len()),
		zap.Int("resolution", s.Resolution()),
		zap.String("format", opts.Format),
		zap.String("output", opts.Output),
	)
	return nil
}
