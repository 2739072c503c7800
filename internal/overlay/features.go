package overlay

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/rentsignal/internal/model"
	"github.com/sells-group/rentsignal/internal/neighborhood"
)

// FeatureCollection annotates neighborhood polygons with their
// recommendation and listing density. Categories and counts are keyed by
// normalized neighborhood name; polygons without a category are no_data.
// Polygons without geometry are left out.
func FeatureCollection(polys []model.NeighborhoodPolygon, categories map[string]model.Category, counts map[string]int) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(polys))}
	for _, p := range polys {
		if p.Geometry == nil {
			continue
		}
		key := neighborhood.Normalize(p.Name)
		c, ok := categories[key]
		if !ok {
			c = model.CategoryNoData
		}
		count := counts[key]

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       key,
			Geometry: p.Geometry,
			Properties: map[string]interface{}{
				"neighbourhood": p.Name,
				"key":           key,
				"category":      string(c),
				"label":         c.Label(),
				"color":         c.Color(),
				"tooltip":       Tooltip(p.Name, c),
				"listing_count": count,
				"density_color": DensityColor(count),
			},
		})
	}
	return fc
}
