package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/hexagg/internal/aggregate"
)

// Report output formats.
const (
	ReportText = "text"
	ReportJSON = "json"
	ReportYAML = "yaml"
)

// SweepResult is a full resolution sweep together with the finest
// resolution whose smallest cell holds at least MinOccupancy rows.
// Recommended is nil when no resolution qualifies.
type SweepResult struct {
	MinOccupancy int                `json:"min_occupancy" yaml:"min_occupancy"`
	Recommended  *int               `json:"recommended" yaml:"recommended"`
	Reports      []aggregate.Report `json:"reports" yaml:"reports"`
}

// NewSweepResult pairs reports with their recommendation.
func NewSweepResult(reports []aggregate.Report, minOccupancy int) SweepResult {
	res := SweepResult{MinOccupancy: minOccupancy, Reports: reports}
	if best, ok := aggregate.Recommend(reports, minOccupancy); ok {
		r := best.Resolution
		res.Recommended = &r
	}
	return res
}

// WriteReports encodes occupancy reports to w.
func WriteReports(w io.Writer, reports []aggregate.Report, format string) error {
	switch format {
	case ReportText, "":
		writeReportTable(w, reports)
		return nil
	case ReportJSON, ReportYAML:
		return encodeReport(w, reports, format)
	}
	return eris.Errorf("export: unsupported report format %q", format)
}

// WriteSweep encodes a sweep to w. The text form is the report table
// followed by one recommendation line.
func WriteSweep(w io.Writer, s SweepResult, format string) error {
	switch format {
	case ReportText, "":
		writeReportTable(w, s.Reports)
		if s.Recommended == nil {
			fmt.Fprintf(w, "\nno resolution has at least %d rows in every cell\n", s.MinOccupancy)
		} else {
			fmt.Fprintf(w, "\nrecommended resolution: %d (min occupancy %d)\n", *s.Recommended, s.MinOccupancy)
		}
		return nil
	case ReportJSON, ReportYAML:
		return encodeReport(w, s, format)
	}
	return eris.Errorf("export: unsupported report format %q", format)
}

func writeReportTable(w io.Writer, reports []aggregate.Report) {
	fmt.Fprintf(w, "%-10s %8s %8s %6s %6s %8s\n", "resolution", "rows", "cells", "min", "max", "avg")
	for _, r := range reports {
		fmt.Fprintf(w, "%-10d %8d %8d %6d %6d %8s\n", r.Resolution, r.Rows, r.Cells, r.Min, r.Max, r.Avg)
	}
}

func encodeReport(w io.Writer, v any, format string) error {
	if format == ReportJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "export: encode report json")
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: encode report yaml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "export: close report yaml")
	}
	return nil
}
