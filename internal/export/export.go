// Package export assembles enriched and aggregated output tables.
package export

import (
	"github.com/sells-group/hexagg/internal/aggregate"
	"github.com/sells-group/hexagg/internal/dataset"
)

// CellColumn is the output column that carries the cell identifier.
const CellColumn = "h3Index"

// Record maps a column to its value: a string for copied fields, a float64
// for computed ones.
type Record map[string]any

// Table is an ordered record sequence with a fixed column set. Every record
// has a value for every column.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// Matrix returns the records as rows aligned to Columns.
func (t Table) Matrix() [][]any {
	out := make([][]any, len(t.Records))
	for i, rec := range t.Records {
		row := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = rec[c]
		}
		out[i] = row
	}
	return out
}

// Enriched copies every row, in order, and appends its cell identifier at
// res. With includeCoordinates false the lat and lon columns are dropped.
// Columns are the union of row keys in first-seen order, then h3Index;
// fields a row lacks are filled with "".
func Enriched(ds *dataset.Dataset, res int, includeCoordinates bool, ix aggregate.Indexer) Table {
	keep := func(col string) bool {
		if col == CellColumn {
			return false
		}
		if includeCoordinates {
			return true
		}
		return col != dataset.LatColumn && col != dataset.LonColumn
	}

	var cols []string
	seen := make(map[string]bool)
	for _, r := range ds.Rows {
		for _, k := range r.Keys() {
			if !seen[k] && keep(k) {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	cols = append(cols, CellColumn)

	records := make([]Record, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		rec := make(Record, len(cols))
		for _, c := range cols[:len(cols)-1] {
			rec[c] = r.Value(c)
		}
		rec[CellColumn] = ix.Identifier(r.Lat, r.Lon, res)
		records = append(records, rec)
	}

	return Table{Columns: cols, Records: records}
}

// Aggregated groups the dataset at res and emits one record per cell, in
// first-seen order: h3Index followed by each numeric column that has a
// function in settings. An input column named h3Index is never aggregated.
func Aggregated(ds *dataset.Dataset, res int, settings aggregate.Settings, ix aggregate.Indexer) Table {
	numeric := make([]string, 0, len(ds.NumericColumns))
	for _, c := range ds.NumericColumns {
		if c != CellColumn {
			numeric = append(numeric, c)
		}
	}

	groups := aggregate.GroupBy(ds.Rows, res, ix)
	aggCols, results := aggregate.Aggregate(groups, numeric, settings)

	cols := append([]string{CellColumn}, aggCols...)
	records := make([]Record, 0, len(results))
	for _, r := range results {
		rec := make(Record, len(cols))
		rec[CellColumn] = r.Cell
		for j, c := range aggCols {
			rec[c] = r.Values[j]
		}
		records = append(records, rec)
	}

	return Table{Columns: cols, Records: records}
}
