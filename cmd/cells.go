package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cellsFlags inputFlags

var cellsCmd = &cobra.Command{
	Use:   "cells",
	Short: "Write occupied cell boundaries as GeoJSON",
	Long: `Writes a GeoJSON FeatureCollection with one polygon per occupied H3 cell at
the chosen resolution. Each feature carries its h3Index and record count.

Examples:
  hexagg cells --input points.csv --resolution 6 --output cells.geojson`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := resolveOptions(cmd, &cellsFlags, cfg)
		if err != nil {
			return err
		}
		opts.Aggregations = nil
		return runCells(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	addInputFlags(cellsCmd, &cellsFlags)
	cellsCmd.Flags().StringVar(&cellsFlags.output, "output", "", "write GeoJSON to file (default: stdout)")
	rootCmd.AddCommand(cellsCmd)
}

func runCells(ctx context.Context, opts runOptions, stdout io.Writer) error {
	s, err := loadSession(ctx, opts)
	if err != nil {
		return err
	}

	fc, err := s.Cells()
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "encode cells")
	}

	w, closeFn, err := openOutput(opts.Output, stdout)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		_ = closeFn()
		return eris.Wrap(err, "write cells")
	}
	if err := closeFn(); err != nil {
		return eris.Wrap(err, "close output")
	}

	zap.L().Info("cells written",
		zap.Int("cells", len(fc.Features)),
		zap.Int("resolution", s.Resolution()),
		zap.String("output", opts.Output),
	)
	return nil
}
