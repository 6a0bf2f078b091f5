package tabular

import (
	"io"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads one sheet and splits off the header row. Rows whose cells
// are all blank are skipped, matching how the CSV reader treats blank lines.
func ReadXLSX(path string, opts XLSXOptions) ([]string, [][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "xlsx: open %s", path)
	}

	sheet, err := selectSheet(f, opts)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "xlsx: %s", path)
	}

	header, records := splitHeader(sheetValues(sheet))
	return header, records, nil
}

// WriteXLSX writes a single-sheet workbook. Finite floats become numeric
// cells; everything else is written as text via FormatValue.
func WriteXLSX(w io.Writer, sheetName string, columns []string, rows [][]any) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "xlsx: add sheet %q", sheetName)
	}

	header := sheet.AddRow()
	for _, c := range columns {
		header.AddCell().SetString(c)
	}

	for _, row := range rows {
		xr := sheet.AddRow()
		for j := range columns {
			cell := xr.AddCell()
			if j >= len(row) {
				continue
			}
			switch v := row[j].(type) {
			case float64:
				if math.IsNaN(v) || math.IsInf(v, 0) {
					cell.SetString(FormatFloat(v))
				} else {
					cell.SetFloat(v)
				}
			case int:
				cell.SetInt(v)
			default:
				cell.SetString(FormatValue(v))
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

// selectSheet picks the sheet named in opts, falling back to the index.
func selectSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		if sheet, ok := f.Sheet[opts.SheetName]; ok {
			return sheet, nil
		}
		names := make([]string, 0, len(f.Sheets))
		for _, sh := range f.Sheets {
			names = append(names, sh.Name)
		}
		return nil, eris.Errorf("no sheet named %q (have %s)", opts.SheetName, strings.Join(names, ", "))
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("sheet index %d out of range, workbook has %d sheets", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

// sheetValues returns the text of every non-blank row.
func sheetValues(sheet *xlsx.Sheet) [][]string {
	var rows [][]string
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		values := make([]string, len(row.Cells))
		empty := true
		for j, c := range row.Cells {
			values[j] = c.String()
			if strings.TrimSpace(values[j]) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, values)
		}
	}
	return rows
}
