package aggregate

import (
	"github.com/sells-group/hexagg/internal/dataset"
)

// Record is one aggregated cell. Values align with the Columns passed to
// Aggregate after filtering to configured ones.
type Record struct {
	Cell   string
	Values []float64
}

// Aggregate computes one Record per group over the columns that have a
// function in settings. It returns the output columns alongside the
// records. Unparseable values enter as NaN.
func Aggregate(groups Groups, columns []string, settings Settings) ([]string, []Record) {
	cols := settings.Configured(columns)

	records := make([]Record, 0, len(groups))
	for _, g := range groups {
		rec := Record{Cell: g.Cell, Values: make([]float64, len(cols))}
		for j, col := range cols {
			rec.Values[j] = settings[col].Apply(ColumnValues(g.Rows, col))
		}
		records = append(records, rec)
	}
	return cols, records
}

// ColumnValues parses col from every row, in order.
func ColumnValues(rows []dataset.Row, col string) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = dataset.ParseFloat(r.Value(col))
	}
	return out
}
