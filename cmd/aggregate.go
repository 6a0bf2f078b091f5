package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/hexagg/internal/session"
)

var aggregateFlags inputFlags

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate numeric columns per H3 cell",
	Long: `Groups records by H3 cell and writes one row per cell: h3Index followed by
each numeric column that has an aggregation function. Cells appear in the
order they are first seen in the file.

Functions: sum, mean, median, max, min, count. Non-numeric values in a
numeric column surface as NaN.

Examples:
  hexagg aggregate --input points.csv --resolution 6 --agg income=median --agg visits=sum`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := resolveOptions(cmd, &aggregateFlags, cfg)
		if err != nil {
			return err
		}
		return runAggregate(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	addInputFlags(aggregateCmd, &aggregateFlags)
	addOutputFlags(aggregateCmd, &aggregateFlags)
	aggregateCmd.Flags().StringArrayVar(&aggregateFlags.aggregations, "agg", nil, "column=function assignment, repeatable (added to config engine.aggregations)")
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(ctx context.Context, opts runOptions, stdout io.Writer) error {
	return exportTable(ctx, opts, session.Aggregated, stdout)
}
