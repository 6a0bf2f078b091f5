package tabular

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/hexagg/internal/dataset"
)

// ReadShapefile reads the DBF attributes of every shape as string columns
// and appends lat and lon taken from the geometry. Points use their own
// position; other shapes use the centre of their bounding box. Null shapes
// leave both coordinates empty. Attribute columns named lat or lon are
// replaced by the geometry.
func ReadShapefile(path string) ([]string, [][]string, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "shapefile: open %s", path)
	}
	defer func() { _ = reader.Close() }()

	var (
		header []string
		attrs  []int
	)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		if name == dataset.LatColumn || name == dataset.LonColumn {
			continue
		}
		header = append(header, name)
		attrs = append(attrs, i)
	}
	header = append(header, dataset.LatColumn, dataset.LonColumn)

	var records [][]string
	var nullShapes int
	for reader.Next() {
		_, shape := reader.Shape()

		rec := make([]string, 0, len(header))
		for _, idx := range attrs {
			rec = append(rec, strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00")))
		}

		lat, lon := shapeCoordinates(shape)
		if lat == "" {
			nullShapes++
		}
		records = append(records, append(rec, lat, lon))
	}

	if nullShapes > 0 {
		zap.L().Debug("shapefile: records without geometry",
			zap.String("path", path),
			zap.Int("count", nullShapes),
		)
	}
	return header, records, nil
}

// shapeCoordinates returns the lat and lon text for a shape.
func shapeCoordinates(s shp.Shape) (string, string) {
	switch p := s.(type) {
	case nil, *shp.Null:
		return "", ""
	case *shp.Point:
		return formatCoord(p.Y), formatCoord(p.X)
	case *shp.PointZ:
		return formatCoord(p.Y), formatCoord(p.X)
	case *shp.PointM:
		return formatCoord(p.Y), formatCoord(p.X)
	}
	b := s.BBox()
	return formatCoord((b.MinY + b.MaxY) / 2), formatCoord((b.MinX + b.MaxX) / 2)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
