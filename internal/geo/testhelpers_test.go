package geo

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/rentsignal/internal/model"
)

// square returns a closed ring of lon/lat coordinates.
func square(minX, minY, maxX, maxY float64) []geom.Coord {
	return []geom.Coord{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}
}

func polygon(rings ...[]geom.Coord) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords(rings)
}

func neighborhood(name string, g geom.T) model.NeighborhoodPolygon {
	return model.NeighborhoodPolygon{Name: name, Geometry: g}
}
