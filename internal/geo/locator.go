package geo

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/model"
)

// searchTolerance pads a query point into the non-empty rectangle that
// rtreego requires.
const searchTolerance = 1e-9

// region is one indexed neighborhood.
type region struct {
	name   string
	order  int
	polys  []*geom.Polygon
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (r *region) Bounds() rtreego.Rect { return r.bounds }

// Locator assigns points to neighborhood polygons. Candidate polygons are
// found with an R-tree over their bounding boxes, then confirmed with an
// exact point-in-polygon test. Safe for concurrent reads.
type Locator struct {
	tree *rtreego.Rtree
	size int
}

// NewLocator indexes the given polygons. Polygons with geometry other than
// Polygon or MultiPolygon are ignored.
func NewLocator(polygons []model.NeighborhoodPolygon) *Locator {
	var objs []rtreego.Spatial
	for i, p := range polygons {
		r, ok := newRegion(p, i)
		if !ok {
			zap.L().Debug("geo: skipping neighborhood without usable geometry", zap.String("name", p.Name))
			continue
		}
		objs = append(objs, r)
	}
	return &Locator{
		tree: rtreego.NewTree(2, 25, 50, objs...),
		size: len(objs),
	}
}

func newRegion(p model.NeighborhoodPolygon, order int) (*region, bool) {
	var polys []*geom.Polygon
	switch g := p.Geometry.(type) {
	case *geom.Polygon:
		polys = []*geom.Polygon{g}
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			polys = append(polys, g.Polygon(i))
		}
	default:
		return nil, false
	}
	if len(polys) == 0 || p.Geometry.Empty() {
		return nil, false
	}

	b := p.Geometry.Bounds()
	minX, minY, maxX, maxY := b.Min(0), b.Min(1), b.Max(0), b.Max(1)
	if anyNonFinite(minX, minY, maxX, maxY) {
		return nil, false
	}
	rect, err := rtreego.NewRectFromPoints(rtreego.Point{minX, minY}, rtreego.Point{maxX, maxY})
	if err != nil {
		return nil, false
	}
	return &region{name: p.Name, order: order, polys: polys, bounds: rect}, true
}

// Len returns the number of indexed neighborhoods.
func (l *Locator) Len() int { return l.size }

// Locate returns the name of the neighborhood containing the point. When
// polygons overlap, the one listed first wins. Points on a boundary count
// as inside.
func (l *Locator) Locate(lat, lon float64) (string, bool) {
	if l == nil || l.size == 0 || anyNonFinite(lat, lon) {
		return "", false
	}

	pt := geom.Coord{lon, lat}
	candidates := l.tree.SearchIntersect(rtreego.Point{lon, lat}.ToRect(searchTolerance))

	best := -1
	name := ""
	for _, c := range candidates {
		r := c.(*region)
		if best >= 0 && r.order >= best {
			continue
		}
		if r.contains(pt) {
			best = r.order
			name = r.name
		}
	}
	return name, best >= 0
}

func (r *region) contains(pt geom.Coord) bool {
	for _, p := range r.polys {
		if polygonContains(p, pt) {
			return true
		}
	}
	return false
}

// polygonContains reports whether pt lies in the outer ring of p and not
// strictly inside any of its holes.
func polygonContains(p *geom.Polygon, pt geom.Coord) bool {
	if p.NumLinearRings() == 0 {
		return false
	}
	if !xy.IsPointInRing(p.Layout(), pt, p.LinearRing(0).FlatCoords()) {
		return false
	}
	for i := 1; i < p.NumLinearRings(); i++ {
		hole := p.LinearRing(i).FlatCoords()
		if xy.IsPointInRing(p.Layout(), pt, hole) && !onRingBoundary(p.Layout(), pt, hole) {
			return false
		}
	}
	return true
}

func onRingBoundary(layout geom.Layout, pt geom.Coord, ring []float64) bool {
	stride := layout.Stride()
	for i := 0; i+2*stride <= len(ring); i += stride {
		if xy.IsOnLine(layout, pt, ring[i:i+2*stride]) {
			return true
		}
	}
	return false
}

func anyNonFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
