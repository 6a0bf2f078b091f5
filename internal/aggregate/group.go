package aggregate

import (
	"github.com/sells-group/hexagg/internal/dataset"
)

// Indexer maps a coordinate to a cell identifier at a resolution.
type Indexer interface {
	Identifier(lat, lon float64, res int) string
}

// Group is the rows that fall in one cell, in input order.
type Group struct {
	Cell string
	Rows []dataset.Row
}

// Groups is an insertion-ordered partition of rows by cell.
type Groups []Group

// GroupBy partitions rows by cell at res in a single pass. Groups appear in
// the order their cell is first seen; rows keep their input order.
func GroupBy(rows []dataset.Row, res int, ix Indexer) Groups {
	index := make(map[string]int)
	var groups Groups
	for _, r := range rows {
		id := ix.Identifier(r.Lat, r.Lon, res)
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, Group{Cell: id})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// Sizes returns the row count of each group.
func (g Groups) Sizes() []int {
	out := make([]int, len(g))
	for i, grp := range g {
		out[i] = len(grp.Rows)
	}
	return out
}

// Total returns the number of rows across all groups.
func (g Groups) Total() int {
	n := 0
	for _, grp := range g {
		n += len(grp.Rows)
	}
	return n
}
