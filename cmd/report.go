package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/hexagg/internal/aggregate"
	"github.com/sells-group/hexagg/internal/export"
)

var (
	reportFlags  inputFlags
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report records per cell at a resolution",
	Long:  "Prints the minimum, maximum and average number of records per occupied H3 cell, to judge whether a resolution is coarse enough to anonymize the data.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := resolveOptions(cmd, &reportFlags, cfg)
		if err != nil {
			return err
		}
		opts.Aggregations = nil
		return runReport(cmd.Context(), opts, reportFormat, cmd.OutOrStdout())
	},
}

func init() {
	addInputFlags(reportCmd, &reportFlags)
	reportCmd.Flags().StringVar(&reportFormat, "format", export.ReportText, "report format: text, json or yaml")
	rootCmd.AddCommand(reportCmd)
}

func runReport(ctx context.Context, opts runOptions, format string, w io.Writer) error {
	s, err := loadSession(ctx, opts)
	if err != nil {
		return err
	}

	r, err := s.Occupancy()
	if err != nil {
		return err
	}
	if err := export.WriteReports(w, []aggregate.Report{r}, format); err != nil {
		return eris.Wrap(err, "report")
	}
	return nil
}
