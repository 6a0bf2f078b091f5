package dataset

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Import failures. Both abort the whole import.
var (
	ErrMissingRequiredColumns = eris.New("dataset: file must contain lat and lon columns")
	ErrNoValidCoordinates     = eris.New("dataset: no rows with valid lat/lon coordinates")
	ErrPointOutOfRange        = eris.New("dataset: point index out of range")
)

// Dataset is an accepted import: the rows with valid coordinates, in file
// order, plus the numeric columns sampled from the first of them.
type Dataset struct {
	Columns        []string
	Rows           []Row
	NumericColumns []string
	// Skipped counts rows dropped for unparseable coordinates.
	Skipped int
}

// Validate turns a decoded table into a Dataset. The first row must carry
// both coordinate columns; rows whose lat or lon does not parse to a finite
// number are dropped.
func Validate(header []string, records [][]string) (*Dataset, error) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NewRow(header, rec))
	}

	// With no data rows the header alone decides.
	first := NewRow(header, header)
	if len(rows) > 0 {
		first = rows[0]
	}
	if !first.Has(LatColumn) || !first.Has(LonColumn) {
		return nil, ErrMissingRequiredColumns
	}

	valid := make([]Row, 0, len(rows))
	for i, r := range rows {
		lat := ParseFloat(r.Value(LatColumn))
		lon := ParseFloat(r.Value(LonColumn))
		if !IsFinite(lat) || !IsFinite(lon) {
			zap.L().Debug("dataset: skipping row with invalid coordinates",
				zap.Int("row", i),
				zap.String("lat", r.Value(LatColumn)),
				zap.String("lon", r.Value(LonColumn)),
			)
			continue
		}
		r.Lat, r.Lon = lat, lon
		valid = append(valid, r)
	}

	if len(valid) == 0 {
		return nil, ErrNoValidCoordinates
	}

	ds := &Dataset{
		Columns:        uniqueColumns(header),
		Rows:           valid,
		NumericColumns: DetectNumericColumns(valid[0]),
		Skipped:        len(rows) - len(valid),
	}
	return ds, nil
}

// Len returns the number of accepted rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// IsNumeric reports whether col was detected as numeric at import.
func (d *Dataset) IsNumeric(col string) bool {
	for _, c := range d.NumericColumns {
		if c == col {
			return true
		}
	}
	return false
}

// RemovePoint returns a new Dataset without the row at index i. The
// receiver is left untouched and the numeric columns carry over unchanged.
func (d *Dataset) RemovePoint(i int) (*Dataset, error) {
	if i < 0 || i >= len(d.Rows) {
		return nil, eris.Wrapf(ErrPointOutOfRange, "remove point %d of %d", i, len(d.Rows))
	}

	rows := make([]Row, 0, len(d.Rows)-1)
	rows = append(rows, d.Rows[:i]...)
	rows = append(rows, d.Rows[i+1:]...)

	return &Dataset{
		Columns:        d.Columns,
		Rows:           rows,
		NumericColumns: d.NumericColumns,
		Skipped:        d.Skipped,
	}, nil
}

func uniqueColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	out := make([]string, 0, len(header))
	for _, h := range header {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
