package tabular

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Supported file formats.
const (
	FormatCSV       = "csv"
	FormatXLSX      = "xlsx"
	FormatShapefile = "shp" // read only
)

// ReadOptions configures ReadFile.
type ReadOptions struct {
	CSV  CSVOptions
	XLSX XLSXOptions
}

// FormatOf infers the format from a file extension, defaulting to CSV.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".shp":
		return FormatShapefile
	}
	return FormatCSV
}

// ReadFile decodes a CSV, XLSX or point shapefile into a header and records.
func ReadFile(ctx context.Context, path string, opts ReadOptions) ([]string, [][]string, error) {
	switch FormatOf(path) {
	case FormatXLSX:
		return ReadXLSX(path, opts.XLSX)
	case FormatShapefile:
		return ReadShapefile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "tabular: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadCSV(ctx, f, opts.CSV)
}

// Write encodes columns and rows in the given format.
func Write(w io.Writer, format string, columns []string, rows [][]any) error {
	switch format {
	case FormatCSV, "":
		return WriteCSV(w, columns, rows)
	case FormatXLSX:
		return WriteXLSX(w, "hexagg", columns, rows)
	}
	return eris.Errorf("tabular: unsupported format %q", format)
}
