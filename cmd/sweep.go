package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hexagg/internal/export"
)

var (
	sweepFlags        inputFlags
	sweepFormat       string
	sweepConcurrency  int
	sweepMinOccupancy int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Report occupancy at every resolution",
	Long: `Computes the occupancy report for resolutions 0 through 15 and recommends
the finest resolution whose least occupied cell still holds at least
--min-occupancy records.

Examples:
  hexagg sweep --input points.csv --min-occupancy 10
  hexagg sweep --input points.xlsx --format yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := resolveOptions(cmd, &sweepFlags, cfg)
		if err != nil {
			return err
		}
		opts.Aggregations = nil

		concurrency := cfg.Sweep.Concurrency
		if cmd.Flags().Changed("concurrency") {
			concurrency = sweepConcurrency
		}
		minOccupancy := cfg.Sweep.MinOccupancy
		if cmd.Flags().Changed("min-occupancy") {
			minOccupancy = sweepMinOccupancy
		}
		return runSweep(cmd.Context(), opts, sweepFormat, concurrency, minOccupancy, cmd.OutOrStdout())
	},
}

func init() {
	addInputFlags(sweepCmd, &sweepFlags)
	sweepCmd.Flags().StringVar(&sweepFormat, "format", export.ReportText, "report format: text, json or yaml")
	sweepCmd.Flags().IntVar(&sweepConcurrency, "concurrency", 4, "resolutions computed in parallel (overrides sweep.concurrency)")
	sweepCmd.Flags().IntVar(&sweepMinOccupancy, "min-occupancy", 5, "minimum records per cell for the recommendation (overrides sweep.min_occupancy)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(ctx context.Context, opts runOptions, format string, concurrency, minOccupancy int, w io.Writer) error {
	if concurrency < 1 {
		return eris.Errorf("concurrency must be at least 1, got %d", concurrency)
	}
	if minOccupancy < 1 {
		return eris.Errorf("min-occupancy must be at least 1, got %d", minOccupancy)
	}

	s, err := loadSession(ctx, opts)
	if err != nil {
		return err
	}

	reports, err := s.Sweep(ctx, concurrency)
	if err != nil {
		return err
	}
	result := export.NewSweepResult(reports, minOccupancy)
	if err := export.WriteSweep(w, result, format); err != nil {
		return eris.Wrap(err, "sweep")
	}

	if result.Recommended != nil {
		zap.L().Info("recommended resolution",
			zap.Int("resolution", *result.Recommended),
			zap.Int("min_occupancy", minOccupancy),
		)
	} else {
		zap.L().Warn("no resolution meets minimum occupancy", zap.Int("min_occupancy", minOccupancy))
	}
	return nil
}
