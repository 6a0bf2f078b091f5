package main

import (
	"context"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hexagg/internal/aggregate"
	"github.com/sells-group/hexagg/internal/cell"
	"github.com/sells-group/hexagg/internal/config"
	"github.com/sells-group/hexagg/internal/session"
	"github.com/sells-group/hexagg/internal/tabular"
)

// runOptions is the resolved input for every subcommand: config values with
// any explicitly set flags applied on top.
type runOptions struct {
	Input              string
	Sheet              string
	Delimiter          rune
	LazyQuotes         bool
	Resolution         int
	IncludeCoordinates bool
	Aggregations       []string
	Drop               []int
	Output             string
	Format             string
}

// inputFlags holds the raw flag values shared by the subcommands.
type inputFlags struct {
	input              string
	sheet              string
	resolution         int
	includeCoordinates bool
	aggregations       []string
	drop               []int
	output             string
	format             string
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.input, "input", "", "path to a CSV or XLSX file with lat/lon columns, or a shapefile (.shp) (required)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "XLSX sheet name, or zero-based index if numeric (overrides input.sheet; empty selects the first sheet)")
	cmd.Flags().IntVar(&f.resolution, "resolution", cell.DefaultResolution, "H3 resolution 0-15 (overrides engine.resolution)")
	cmd.Flags().IntSliceVar(&f.drop, "drop", nil, "zero-based indexes of imported rows to remove before export")
	_ = cmd.MarkFlagRequired("input")
}

func addOutputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.output, "output", "", "write output to file (default: stdout)")
	cmd.Flags().StringVar(&f.format, "format", tabular.FormatCSV, "output format: csv or xlsx (overrides output.format; inferred from --output extension when unset)")
}

// resolveOptions merges cfg with the flags the user actually set.
func resolveOptions(cmd *cobra.Command, f *inputFlags, c *config.Config) (runOptions, error) {
	opts := runOptions{
		Input:              f.input,
		Sheet:              c.Input.Sheet,
		Delimiter:          c.Input.DelimiterRune(),
		LazyQuotes:         c.Input.LazyQuotes,
		Resolution:         c.Engine.Resolution,
		IncludeCoordinates: c.Engine.IncludeCoordinates,
		Aggregations:       append([]string(nil), c.Engine.Aggregations...),
		Drop:               f.drop,
		Output:             f.output,
		Format:             c.Output.Format,
	}

	flags := cmd.Flags()
	if flags.Changed("sheet") {
		opts.Sheet = f.sheet
	}
	if flags.Changed("resolution") {
		opts.Resolution = f.resolution
	}
	if flags.Changed("include-coordinates") {
		opts.IncludeCoordinates = f.includeCoordinates
	}
	if flags.Changed("agg") {
		opts.Aggregations = append(opts.Aggregations, f.aggregations...)
	}

	// Commands without tabular output reuse --format for something else.
	if flags.Lookup("output") == nil {
		return opts, nil
	}
	switch {
	case flags.Changed("format"):
		opts.Format = f.format
	case f.output != "":
		opts.Format = tabular.FormatOf(f.output)
	}
	if opts.Format != tabular.FormatCSV && opts.Format != tabular.FormatXLSX {
		return runOptions{}, eris.Errorf("unsupported output format %q", opts.Format)
	}
	return opts, nil
}

// loadSession reads the input file, imports it and applies the engine
// settings and point removals.
func loadSession(ctx context.Context, opts runOptions) (*session.Session, error) {
	s, err := session.New(session.Options{
		Resolution:         opts.Resolution,
		IncludeCoordinates: opts.IncludeCoordinates,
	})
	if err != nil {
		return nil, err
	}

	header, records, err := tabular.ReadFile(ctx, opts.Input, tabular.ReadOptions{
		CSV:  tabular.CSVOptions{Delimiter: opts.Delimiter, LazyQuotes: opts.LazyQuotes},
		XLSX: sheetOptions(opts.Sheet),
	})
	if err != nil {
		return nil, eris.Wrap(err, "read input")
	}
	zap.L().Info("read input",
		zap.String("path", opts.Input),
		zap.Int("records", len(records)),
		zap.Int("columns", len(header)),
	)

	if err := s.Import(header, records); err != nil {
		return nil, eris.Wrapf(err, "import %s", opts.Input)
	}

	settings, err := aggregate.ParseAssignments(opts.Aggregations)
	if err != nil {
		return nil, err
	}
	if err := s.ApplySettings(settings); err != nil {
		return nil, err
	}

	if err := dropPoints(s, opts.Drop); err != nil {
		return nil, err
	}
	return s, nil
}

// dropPoints removes rows by their index in the imported dataset. Indexes
// are applied highest first so each refers to its imported position.
func dropPoints(s *session.Session, drop []int) error {
	if len(drop) == 0 {
		return nil
	}
	idx := slices.Clone(drop)
	slices.Sort(idx)
	idx = slices.Compact(idx)
	slices.Reverse(idx)

	for _, i := range idx {
		if err := s.RemovePoint(i); err != nil {
			return err
		}
	}
	zap.L().Info("removed points", zap.Ints("indexes", idx))
	return nil
}

// sheetOptions selects an XLSX sheet by name, or by zero-based index when
// the value is a non-negative integer.
func sheetOptions(sheet string) tabular.XLSXOptions {
	if i, err := strconv.Atoi(sheet); err == nil && i >= 0 {
		return tabular.XLSXOptions{SheetIndex: i}
	}
	return tabular.XLSXOptions{SheetName: sheet}
}

// openOutput returns the destination writer and a close func.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, f.Close, nil
}
