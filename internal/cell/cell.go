// Package cell maps coordinates to H3 cell identifiers and back to cell
// boundaries.
package cell

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/uber/h3-go/v4"
)

// Resolution bounds of the H3 grid.
const (
	MinResolution     = 0
	MaxResolution     = 15
	DefaultResolution = 7
)

// ErrInvalidCell is returned when an identifier does not name an H3 cell.
var ErrInvalidCell = eris.New("cell: invalid cell identifier")

// LatLng is one boundary vertex in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ValidResolution reports whether res is inside the H3 resolution range.
func ValidResolution(res int) bool {
	return res >= MinResolution && res <= MaxResolution
}

// H3 is the cell indexer backed by the H3 library. The zero value is ready
// to use and safe for concurrent use.
type H3 struct{}

// Identifier returns the H3 cell identifier, in its canonical hexadecimal
// string form, of the cell containing (lat, lon) at res. Range checking of
// the inputs is left to the H3 library.
func (H3) Identifier(lat, lon float64, res int) string {
	return Identifier(lat, lon, res)
}

// Boundary returns the vertices of the cell named by id.
func (H3) Boundary(id string) ([]LatLng, error) {
	return Boundary(id)
}

// Polygon returns the cell named by id as a closed polygon.
func (H3) Polygon(id string) (*geom.Polygon, error) {
	return Polygon(id)
}

// Identifier returns the H3 cell identifier of (lat, lon) at res.
func Identifier(lat, lon float64, res int) string {
	return h3.LatLngToCell(h3.NewLatLng(lat, lon), res).String()
}

// Parse converts an identifier back to an H3 cell.
func Parse(id string) (h3.Cell, error) {
	c := h3.Cell(h3.IndexFromString(id))
	if !c.IsValid() {
		return 0, eris.Wrapf(ErrInvalidCell, "parse %q", id)
	}
	return c, nil
}

// Boundary returns the ordered vertices of the cell named by id. The ring is
// open: the first vertex is not repeated.
func Boundary(id string) ([]LatLng, error) {
	c, err := Parse(id)
	if err != nil {
		return nil, err
	}

	b := c.Boundary()
	out := make([]LatLng, 0, len(b))
	for _, v := range b {
		out = append(out, LatLng{Lat: v.Lat, Lon: v.Lng})
	}
	return out, nil
}

// Polygon returns the cell boundary as a closed XY (lon, lat) polygon with
// SRID 4326.
func Polygon(id string) (*geom.Polygon, error) {
	verts, err := Boundary(id)
	if err != nil {
		return nil, err
	}
	if len(verts) < 3 {
		return nil, eris.Wrapf(ErrInvalidCell, "cell %s has %d boundary vertices", id, len(verts))
	}

	flat := make([]float64, 0, (len(verts)+1)*2)
	for _, v := range verts {
		flat = append(flat, v.Lon, v.Lat)
	}
	flat = append(flat, verts[0].Lon, verts[0].Lat)

	poly := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
	return poly.SetSRID(4326), nil
}
