package export

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/hexagg/internal/aggregate"
)

// Boundaries resolves a cell identifier to its polygon.
type Boundaries interface {
	Polygon(id string) (*geom.Polygon, error)
}

// Cells builds a FeatureCollection with one polygon per group, in group
// order. Each feature carries the cell identifier and its row count.
func Cells(groups aggregate.Groups, b Boundaries) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(groups)),
	}
	for _, g := range groups {
		poly, err := b.Polygon(g.Cell)
		if err != nil {
			return nil, eris.Wrapf(err, "export: boundary for %s", g.Cell)
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: poly,
			Properties: map[string]any{
				CellColumn: g.Cell,
				"count":    len(g.Rows),
			},
		})
	}
	return fc, nil
}
