package aggregate

import (
	"math/big"

	"github.com/sells-group/hexagg/internal/dataset"
)

// Report summarises how many rows land in each cell. Avg is fixed to two
// decimals, rounding halves away from zero.
type Report struct {
	Resolution int    `json:"resolution" yaml:"resolution"`
	Cells      int    `json:"cells" yaml:"cells"`
	Rows       int    `json:"rows" yaml:"rows"`
	Min        int    `json:"min" yaml:"min"`
	Max        int    `json:"max" yaml:"max"`
	Avg        string `json:"avg" yaml:"avg"`
}

// Occupancy computes the min, max and mean group size. With no groups every
// figure is zero.
func Occupancy(groups Groups) Report {
	r := Report{Cells: len(groups), Avg: formatFixed2(0)}
	if len(groups) == 0 {
		return r
	}

	r.Min = len(groups[0].Rows)
	for _, size := range groups.Sizes() {
		r.Rows += size
		r.Min = min(r.Min, size)
		r.Max = max(r.Max, size)
	}
	r.Avg = formatFixed2(float64(r.Rows) / float64(r.Cells))
	return r
}

// OccupancyAt groups rows at res and reports on the result.
func OccupancyAt(rows []dataset.Row, res int, ix Indexer) Report {
	r := Occupancy(GroupBy(rows, res, ix))
	r.Resolution = res
	return r
}

// formatFixed2 rounds the exact binary value of v, so 0.125 gives "0.13".
func formatFixed2(v float64) string {
	return new(big.Rat).SetFloat64(v).FloatString(2)
}
